package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

type countingClassifier struct {
	intent Intent
	calls  int
}

func (c *countingClassifier) Classify(ctx context.Context, question string) Intent {
	c.calls++
	return c.intent
}

func newTestOrchestrator(projects ProjectStore, chunks ChunkStore, docs DocumentStore, classifier IntentClassifier, gen Generator) *Orchestrator {
	contexts := NewContextBuilder(chunks)
	return NewOrchestrator(
		projects,
		classifier,
		NewQAAgent(contexts, gen, 0),
		NewSummaryAgent(contexts, gen, 0),
		NewDiagramAgent(contexts, docs, gen),
	)
}

func TestOrchestrator_AbsentProjectSkipsClassifier(t *testing.T) {
	classifier := &countingClassifier{intent: IntentQA}
	o := newTestOrchestrator(&fakeProjectStore{}, &fakeChunkStore{}, &fakeDocStore{}, classifier, nil)

	res, err := o.Answer(context.Background(), 42, "anything")
	require.NoError(t, err)
	require.Equal(t, "Project not found.", res.Answer)
	require.Equal(t, HandlerOrchestrator, res.Handler)
	require.Equal(t, IntentOther, res.Intent)
	require.Zero(t, classifier.calls)
}

func TestOrchestrator_RoutesQA(t *testing.T) {
	projects := &fakeProjectStore{projects: map[int64]*model.Project{1: {ID: 1, Name: "Site A"}}}
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 1, Locator: 1, Content: "Inverter rated 2000kVA"}},
	}}
	gen := &fakeGenerator{available: true, reply: "It is rated 2000kVA."}
	o := newTestOrchestrator(projects, chunks, &fakeDocStore{}, &countingClassifier{intent: IntentQA}, gen)

	res, err := o.Answer(context.Background(), 1, "What is the inverter rating?")
	require.NoError(t, err)
	require.Equal(t, HandlerQA, res.Handler)
	require.Equal(t, IntentQA, res.Intent)
	require.True(t, strings.HasSuffix(res.Answer, "Sources: Doc 1 Page 1"), res.Answer)
}

func TestOrchestrator_RoutesSummary(t *testing.T) {
	projects := &fakeProjectStore{projects: map[int64]*model.Project{1: {ID: 1}}}
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 1, Locator: 1, Content: "100MW site"}},
	}}
	o := newTestOrchestrator(projects, chunks, &fakeDocStore{}, &countingClassifier{intent: IntentSummary}, nil)

	res, err := o.Answer(context.Background(), 1, "overview please")
	require.NoError(t, err)
	require.Equal(t, HandlerSummary, res.Handler)
	require.Equal(t, IntentSummary, res.Intent)
	require.Equal(t, "100MW site", res.Answer)
}

func TestOrchestrator_RoutesDiagram(t *testing.T) {
	projects := &fakeProjectStore{projects: map[int64]*model.Project{1: {ID: 1}}}
	o := newTestOrchestrator(projects, &fakeChunkStore{}, &fakeDocStore{}, &countingClassifier{intent: IntentDiagram}, nil)

	res, err := o.Answer(context.Background(), 1, "what's on the one-line?")
	require.NoError(t, err)
	require.Equal(t, HandlerDiagram, res.Handler)
	require.Equal(t, IntentDiagram, res.Intent)
	require.Equal(t, msgNoPDF, res.Answer)
}

func TestOrchestrator_AmbiguousIntentAnsweredAsQA(t *testing.T) {
	projects := &fakeProjectStore{projects: map[int64]*model.Project{1: {ID: 1}}}
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 1, Locator: 1, Content: "some text"}},
	}}
	gen := &fakeGenerator{available: true, reply: "Best effort answer."}
	o := newTestOrchestrator(projects, chunks, &fakeDocStore{}, &countingClassifier{intent: IntentOther}, gen)

	res, err := o.Answer(context.Background(), 1, "hmm")
	require.NoError(t, err)
	require.Equal(t, HandlerQA, res.Handler)
	require.Equal(t, IntentOther, res.Intent)
	require.True(t, strings.HasPrefix(res.Answer, ambiguousIntentPrefix), res.Answer)
}
