package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

func TestDiagramAgent_NoPDFInProject(t *testing.T) {
	docs := &fakeDocStore{docs: []model.Document{
		{ID: 1, ProjectID: 1, FileName: "loads.xlsx"},
		{ID: 2, ProjectID: 1, FileName: "report.docx"},
	}}
	gen := &fakeGenerator{available: true}
	a := NewDiagramAgent(NewContextBuilder(&fakeChunkStore{}), docs, gen)

	answer, err := a.Answer(context.Background(), 1, "what's on the one-line?", 0, 0)
	require.NoError(t, err)
	require.Equal(t, msgNoPDF, answer)
	require.Zero(t, gen.calls)
}

func TestDiagramAgent_PicksNewestPDF(t *testing.T) {
	// ListByProject returns newest first; the agent takes the first PDF.
	docs := &fakeDocStore{docs: []model.Document{
		{ID: 5, ProjectID: 1, FileName: "notes.docx"},
		{ID: 4, ProjectID: 1, FileName: "oneline-REV2.PDF"},
		{ID: 2, ProjectID: 1, FileName: "oneline-rev1.pdf"},
	}}
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 4, Locator: 1, Content: "main breaker 1200A"}},
	}}
	gen := &fakeGenerator{available: true, reply: "The main breaker is 1200A."}
	a := NewDiagramAgent(NewContextBuilder(chunks), docs, gen)

	answer, err := a.Answer(context.Background(), 1, "what's the main breaker?", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "The main breaker is 1200A.", answer)
	require.Contains(t, gen.lastPrompt, "document 4, page 1")
	require.Contains(t, gen.lastPrompt, "main breaker 1200A")
}

func TestDiagramAgent_DegradedReturnsPageContext(t *testing.T) {
	docs := &fakeDocStore{docs: []model.Document{
		{ID: 4, ProjectID: 1, FileName: "oneline.pdf"},
	}}
	chunks := &fakeChunkStore{byProject: map[int64][]model.Chunk{
		1: {{ProjectID: 1, DocumentID: 4, Locator: 1, Content: "main breaker 1200A"}},
	}}
	a := NewDiagramAgent(NewContextBuilder(chunks), docs, nil)

	answer, err := a.Answer(context.Background(), 1, "what's on it?", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "Diagram / page context for project 1, document 4, page 1:\n\nmain breaker 1200A", answer)
}

func TestDiagramAgent_EmptyPageMessage(t *testing.T) {
	docs := &fakeDocStore{docs: []model.Document{
		{ID: 4, ProjectID: 1, FileName: "oneline.pdf"},
	}}
	a := NewDiagramAgent(NewContextBuilder(&fakeChunkStore{}), docs, nil)

	answer, err := a.Answer(context.Background(), 1, "page 3 please", 4, 3)
	require.NoError(t, err)
	require.Equal(t, "No text chunks found for doc 4, page 3. "+
		"Either the page has no text, or it hasn't been indexed yet.", answer)
}
