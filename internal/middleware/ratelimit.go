package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/pkg/errcode"
	"github.com/sunbeamlabs/sundoc/internal/pkg/response"
)

type windowCount struct {
	start time.Time
	count int
}

type rateLimiter struct {
	mu            sync.Mutex
	window        time.Duration
	maxRequests   int
	counts        map[string]windowCount
	sweepInterval time.Duration
	lastSweep     time.Time
	now           func() time.Time
}

// RateLimit allows at most maxRequests per client ip and route within each
// window.
func RateLimit(window time.Duration, maxRequests int) gin.HandlerFunc {
	limiter := &rateLimiter{
		window:        window,
		maxRequests:   maxRequests,
		counts:        make(map[string]windowCount),
		sweepInterval: window,
		now:           time.Now,
	}
	return limiter.handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.window <= 0 || l.maxRequests <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	key := strings.Join([]string{ip, path}, "|")

	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.sweepInterval {
		l.cleanupExpiredLocked(now)
	}
	entry, exists := l.counts[key]
	if !exists || now.Sub(entry.start) >= l.window {
		entry = windowCount{start: now}
	}
	entry.count++
	l.counts[key] = entry
	over := entry.count > l.maxRequests
	l.mu.Unlock()

	if over {
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("ip", ip),
			zap.String("path", path),
		)
		response.Error(c, errcode.ErrTooMany, http.StatusText(http.StatusTooManyRequests))
		c.Abort()
		return
	}
	c.Next()
}

func (l *rateLimiter) cleanupExpiredLocked(now time.Time) {
	for key, entry := range l.counts {
		if now.Sub(entry.start) >= l.window {
			delete(l.counts, key)
		}
	}
	l.lastSweep = now
}
