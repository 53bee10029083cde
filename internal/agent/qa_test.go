package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

func TestQAAgent_AnswerWithCitations(t *testing.T) {
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {
			{ProjectID: 1, DocumentID: 1, Locator: 1, Content: "Inverter rated 2000kVA"},
		},
	}}
	gen := &fakeGenerator{available: true, reply: "The inverter is rated 2000kVA."}
	a := NewQAAgent(NewContextBuilder(chunks), gen, 0)

	answer, err := a.Answer(context.Background(), 1, "What is the inverter rating?")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(answer, "\n\nSources: Doc 1 Page 1"), answer)
	require.Contains(t, gen.lastPrompt, "(Project 1, Doc 1, ChunkIndex 1) Inverter rated 2000kVA")
	require.Contains(t, gen.lastPrompt, "What is the inverter rating?")
}

func TestQAAgent_CitationsDedupedAndSorted(t *testing.T) {
	sources := []Source{
		{DocumentID: 2, Locator: 3},
		{DocumentID: 1, Locator: 1},
		{DocumentID: 2, Locator: 3},
		{DocumentID: 1, Locator: 2},
	}
	require.Equal(t, "Doc 1 Page 1, Doc 1 Page 2, Doc 2 Page 3", formatCitations(sources))
}

func TestQAAgent_NotConfigured(t *testing.T) {
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 1, Locator: 1, Content: "something"}},
	}}
	gen := &fakeGenerator{available: false}
	a := NewQAAgent(NewContextBuilder(chunks), gen, 0)

	answer, err := a.Answer(context.Background(), 1, "anything")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(answer, msgNotConfigured), answer)
	require.Zero(t, gen.calls)
}

func TestQAAgent_NoContext(t *testing.T) {
	gen := &fakeGenerator{available: true}
	a := NewQAAgent(NewContextBuilder(&fakeChunkStore{byProject: map[int64][]model.Chunk{}}), gen, 0)

	answer, err := a.Answer(context.Background(), 1, "anything")
	require.NoError(t, err)
	require.Equal(t, msgNoContext, answer)
	require.Zero(t, gen.calls)
}
