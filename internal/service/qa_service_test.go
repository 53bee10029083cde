package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunbeamlabs/sundoc/internal/agent"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
	"github.com/sunbeamlabs/sundoc/internal/repo"
)

type stubAnswerer struct {
	res   agent.Result
	err   error
	calls int
}

func (s *stubAnswerer) Answer(ctx context.Context, projectID int64, question string) (agent.Result, error) {
	s.calls++
	return s.res, s.err
}

func newQAFixture(t *testing.T, answerer Answerer) (*ProjectService, *QAService) {
	t.Helper()
	db := newTestDB(t)
	store := newTestStore(t)
	projects := repo.NewProjectRepo(db)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)
	qa := repo.NewQARepo(db)
	return NewProjectService(projects, docs, chunks, qa, store),
		NewQAService(projects, qa, answerer)
}

func TestQAService_AskPersistsExchange(t *testing.T) {
	answerer := &stubAnswerer{res: agent.Result{
		Answer:  "It is rated 2000kVA.",
		Handler: agent.HandlerQA,
		Intent:  agent.IntentQA,
	}}
	projectSvc, qaSvc := newQAFixture(t, answerer)
	ctx := context.Background()

	project, err := projectSvc.Create(ctx, "Site A", "")
	require.NoError(t, err)

	entry, err := qaSvc.Ask(ctx, project.ID, "  What is the inverter rating?  ")
	require.NoError(t, err)
	require.NotZero(t, entry.ID)
	require.Equal(t, "What is the inverter rating?", entry.Question)
	require.Equal(t, "It is rated 2000kVA.", entry.Answer)
	require.NotNil(t, entry.Handler)
	require.Equal(t, agent.HandlerQA, *entry.Handler)
	require.NotNil(t, entry.Intent)
	require.Equal(t, "qa", *entry.Intent)

	history, err := qaSvc.History(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, entry.ID, history[0].ID)
}

func TestQAService_AskValidation(t *testing.T) {
	_, qaSvc := newQAFixture(t, &stubAnswerer{})

	_, err := qaSvc.Ask(context.Background(), 1, "   ")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = qaSvc.Ask(context.Background(), 1, strings.Repeat("a", maxQuestionLen+1))
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestQAService_AskAbsentProjectSkipsAnswerer(t *testing.T) {
	answerer := &stubAnswerer{}
	_, qaSvc := newQAFixture(t, answerer)

	_, err := qaSvc.Ask(context.Background(), 42, "anything")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.Zero(t, answerer.calls)
}

func TestQAService_HandlerFailureStillRecorded(t *testing.T) {
	answerer := &stubAnswerer{
		res: agent.Result{Handler: agent.HandlerDiagram, Intent: agent.IntentDiagram},
		err: errors.New("model blew up"),
	}
	projectSvc, qaSvc := newQAFixture(t, answerer)
	ctx := context.Background()

	project, err := projectSvc.Create(ctx, "Site A", "")
	require.NoError(t, err)

	entry, err := qaSvc.Ask(ctx, project.ID, "what's on the one-line?")
	require.NoError(t, err)
	require.Equal(t, msgAnswerFailed, entry.Answer)
	require.NotNil(t, entry.Handler)
	require.Equal(t, agent.HandlerDiagram, *entry.Handler)

	history, err := qaSvc.History(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, msgAnswerFailed, history[0].Answer)
}

func TestQAService_ExportMarkdownAndHTML(t *testing.T) {
	answerer := &stubAnswerer{res: agent.Result{
		Answer:  "Answer one.",
		Handler: agent.HandlerQA,
		Intent:  agent.IntentQA,
	}}
	projectSvc, qaSvc := newQAFixture(t, answerer)
	ctx := context.Background()

	project, err := projectSvc.Create(ctx, "Site A", "A 100MW site")
	require.NoError(t, err)
	_, err = qaSvc.Ask(ctx, project.ID, "Question one?")
	require.NoError(t, err)

	md, contentType, err := qaSvc.ExportHistory(ctx, project.ID, "markdown")
	require.NoError(t, err)
	require.Equal(t, "text/markdown; charset=utf-8", contentType)
	require.Contains(t, string(md), "# Q&A History: Site A")
	require.Contains(t, string(md), "## 1. Question one?")
	require.Contains(t, string(md), "Answer one.")

	html, contentType, err := qaSvc.ExportHistory(ctx, project.ID, "html")
	require.NoError(t, err)
	require.Equal(t, "text/html; charset=utf-8", contentType)
	require.Contains(t, string(html), "<h1>")
	require.Contains(t, string(html), "Question one?")

	_, _, err = qaSvc.ExportHistory(ctx, project.ID, "pdf")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestQAService_PurgeOlderThan(t *testing.T) {
	answerer := &stubAnswerer{res: agent.Result{Answer: "a", Handler: agent.HandlerQA, Intent: agent.IntentQA}}
	projectSvc, qaSvc := newQAFixture(t, answerer)
	ctx := context.Background()

	project, err := projectSvc.Create(ctx, "Site A", "")
	require.NoError(t, err)
	_, err = qaSvc.Ask(ctx, project.ID, "fresh question")
	require.NoError(t, err)

	removed, err := qaSvc.PurgeOlderThan(ctx, 30)
	require.NoError(t, err)
	require.Zero(t, removed)

	removed, err = qaSvc.PurgeOlderThan(ctx, 0)
	require.NoError(t, err)
	require.Zero(t, removed)

	history, err := qaSvc.History(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}
