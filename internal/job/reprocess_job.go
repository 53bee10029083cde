package job

import (
	"context"
	"time"

	"github.com/sunbeamlabs/sundoc/internal/service"
)

// ReprocessJob retries extraction for documents stuck in processing or
// error longer than stalledAfter.
type ReprocessJob struct {
	documents    *service.DocumentService
	stalledAfter time.Duration
}

func NewReprocessJob(documents *service.DocumentService, stalledAfter time.Duration) *ReprocessJob {
	return &ReprocessJob{documents: documents, stalledAfter: stalledAfter}
}

func (j *ReprocessJob) Name() string {
	return "document_reprocess"
}

func (j *ReprocessJob) Run(ctx context.Context) error {
	if j.documents == nil {
		return nil
	}
	stalledAfter := j.stalledAfter
	if stalledAfter <= 0 {
		stalledAfter = 30 * time.Minute
	}
	before := time.Now().Add(-stalledAfter).Unix()
	return j.documents.ReprocessStalled(ctx, before)
}
