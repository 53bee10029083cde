// Package agent routes a free-text question about a project to a specialist
// handler and assembles the document context the model answers from.
package agent

import (
	"context"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

type Intent string

const (
	IntentQA      Intent = "qa"
	IntentSummary Intent = "summary"
	IntentDiagram Intent = "diagram"
	IntentOther   Intent = "other"
)

// Handler name strings persisted with each answer.
const (
	HandlerQA           = "project_qa_agent"
	HandlerSummary      = "project_summarizer_agent"
	HandlerDiagram      = "diagram_agent"
	HandlerOrchestrator = "orchestrator"
)

// Source identifies where a context line came from, for citations.
type Source struct {
	ProjectID  int64 `json:"project_id"`
	DocumentID int64 `json:"document_id"`
	Locator    int   `json:"locator"`
}

type Result struct {
	Answer  string `json:"answer"`
	Handler string `json:"handler"`
	Intent  Intent `json:"intent"`
}

// Store views consumed by the agents; satisfied by the repo package.
type ChunkStore interface {
	ListByProject(ctx context.Context, projectID int64, limit uint) ([]model.Chunk, error)
	ListGlobal(ctx context.Context, limit uint) ([]model.Chunk, error)
	ListByLocator(ctx context.Context, projectID, documentID int64, locator int) ([]model.Chunk, error)
}

type DocumentStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]model.Document, error)
}

type ProjectStore interface {
	Get(ctx context.Context, projectID int64) (*model.Project, error)
}

// Generator is the language-model capability. Available reports whether a
// credential is configured; agents degrade instead of calling when it is not.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}
