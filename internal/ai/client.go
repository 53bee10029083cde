package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type ClientConfig struct {
	// Timeout in seconds applied around every model call. Zero disables it.
	Timeout int
	// MaxInputChars rejects oversized prompts before they reach a provider.
	MaxInputChars int
	// CacheSize / CacheTTL control the response cache. Zero size disables it.
	CacheSize int
	CacheTTL  time.Duration
}

// Client is the single language-model entry point handed to the agents. It
// owns the availability gate, timeout and response cache; it never retries.
type Client struct {
	gen   IGenerator
	cfg   ClientConfig
	cache *expirable.LRU[string, string]
}

func NewClient(gen IGenerator, cfg ClientConfig) *Client {
	var cache *expirable.LRU[string, string]
	if cfg.CacheSize > 0 {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = 2 * time.Hour
		}
		cache = expirable.NewLRU[string, string](cfg.CacheSize, nil, ttl)
	}
	return &Client{gen: gen, cfg: cfg, cache: cache}
}

// Available reports whether a model credential is configured. Every agent
// checks this before calling Generate so it can degrade instead of failing.
func (c *Client) Available() bool {
	return c != nil && c.gen != nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", fmt.Errorf("empty prompt")
	}
	if c.cfg.MaxInputChars > 0 && len(trimmed) > c.cfg.MaxInputChars {
		return "", fmt.Errorf("prompt exceeds %d chars", c.cfg.MaxInputChars)
	}
	key := cacheKey(trimmed)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Second)
		defer cancel()
	}
	resp, err := c.gen.Generate(ctx, trimmed)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("empty ai response")
	}
	if c.cache != nil {
		c.cache.Add(key, text)
	}
	return text, nil
}

func cacheKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}
