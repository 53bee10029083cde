package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/service"
)

// QARetentionJob trims old Q&A history. A retention of zero days keeps
// everything.
type QARetentionJob struct {
	qa            *service.QAService
	retentionDays int
}

func NewQARetentionJob(qa *service.QAService, retentionDays int) *QARetentionJob {
	return &QARetentionJob{qa: qa, retentionDays: retentionDays}
}

func (j *QARetentionJob) Name() string {
	return "qa_retention"
}

func (j *QARetentionJob) Run(ctx context.Context) error {
	if j.qa == nil || j.retentionDays <= 0 {
		return nil
	}
	removed, err := j.qa.PurgeOlderThan(ctx, j.retentionDays)
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("purged old qa history", zap.Int64("removed", removed))
	}
	return nil
}
