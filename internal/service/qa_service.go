package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/agent"
	"github.com/sunbeamlabs/sundoc/internal/model"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
	"github.com/sunbeamlabs/sundoc/internal/pkg/timeutil"
	"github.com/sunbeamlabs/sundoc/internal/repo"
)

const (
	maxQuestionLen = 4000

	msgAnswerFailed = "Something went wrong while answering this question. Please try again."
)

// Answerer is the orchestrator as the service sees it.
type Answerer interface {
	Answer(ctx context.Context, projectID int64, question string) (agent.Result, error)
}

type QAService struct {
	projects *repo.ProjectRepo
	qa       *repo.QARepo
	answerer Answerer
}

func NewQAService(projects *repo.ProjectRepo, qa *repo.QARepo, answerer Answerer) *QAService {
	return &QAService{projects: projects, qa: qa, answerer: answerer}
}

// Ask answers the question and persists the exchange. Handler failures are
// recorded as a readable answer rather than dropped, so history always shows
// what the user was told.
func (s *QAService) Ask(ctx context.Context, projectID int64, question string) (*model.QAEntry, error) {
	question = strings.TrimSpace(question)
	if question == "" || len(question) > maxQuestionLen {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	res, err := s.answerer.Answer(ctx, projectID, question)
	if err != nil {
		logutil.GetLogger(ctx).Error("answer handler failed",
			zap.Int64("project_id", projectID),
			zap.String("handler", res.Handler),
			zap.Error(err),
		)
		res.Answer = msgAnswerFailed
	}
	entry := &model.QAEntry{
		ProjectID: projectID,
		Question:  question,
		Answer:    res.Answer,
		Ctime:     timeutil.NowUnix(),
	}
	if res.Handler != "" {
		entry.Handler = strPtr(res.Handler)
	}
	if res.Intent != "" {
		entry.Intent = strPtr(string(res.Intent))
	}
	if err := s.qa.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *QAService) History(ctx context.Context, projectID int64) ([]model.QAEntry, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.qa.ListByProject(ctx, projectID)
}

// ExportHistory renders the project's Q&A history as markdown, or as HTML
// converted from the same markdown. Returns the body and its content type.
func (s *QAService) ExportHistory(ctx context.Context, projectID int64, format string) ([]byte, string, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.qa.ListByProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	md := renderHistoryMarkdown(project, entries)
	switch format {
	case "", "markdown":
		return []byte(md), "text/markdown; charset=utf-8", nil
	case "html":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(md), &buf); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/html; charset=utf-8", nil
	default:
		return nil, "", appErr.ErrInvalid
	}
}

func renderHistoryMarkdown(project *model.Project, entries []model.QAEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Q&A History: %s\n\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", project.Description)
	}
	if len(entries) == 0 {
		b.WriteString("No questions asked yet.\n")
		return b.String()
	}
	for i, entry := range entries {
		asked := time.Unix(entry.Ctime, 0).UTC().Format("2006-01-02 15:04")
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, entry.Question)
		fmt.Fprintf(&b, "_Asked %s UTC", asked)
		if entry.Handler != nil {
			fmt.Fprintf(&b, ", handled by %s", *entry.Handler)
		}
		b.WriteString("_\n\n")
		b.WriteString(entry.Answer)
		b.WriteString("\n\n")
	}
	return b.String()
}

// PurgeOlderThan deletes history entries older than the given number of
// days. Returns the number of entries removed.
func (s *QAService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := timeutil.NowUnix() - int64(days)*86400
	return s.qa.DeleteBefore(ctx, cutoff)
}

func strPtr(s string) *string {
	return &s
}
