package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

type ContextBuilder struct {
	chunks ChunkStore
}

func NewContextBuilder(chunks ChunkStore) *ContextBuilder {
	return &ContextBuilder{chunks: chunks}
}

// ProjectContext loads up to maxChunks chunks for the project in insertion
// order and renders them as one attributed line each. When the project has no
// chunks at all it falls back to the first chunks across every project, so a
// workspace with misattributed uploads still answers; the fallback leaks
// other projects' text and is logged when taken.
func (b *ContextBuilder) ProjectContext(ctx context.Context, projectID int64, maxChunks uint) (string, []Source, error) {
	chunks, err := b.chunks.ListByProject(ctx, projectID, maxChunks)
	if err != nil {
		return "", nil, err
	}
	if len(chunks) == 0 {
		chunks, err = b.chunks.ListGlobal(ctx, maxChunks)
		if err != nil {
			return "", nil, err
		}
		if len(chunks) > 0 {
			logutil.GetLogger(ctx).Warn("no chunks for project, falling back to global chunks",
				zap.Int64("project_id", projectID),
				zap.Int("chunks", len(chunks)),
			)
		}
	}
	if len(chunks) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(chunks))
	sources := make([]Source, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, fmt.Sprintf("(Project %d, Doc %d, ChunkIndex %d) %s",
			c.ProjectID, c.DocumentID, c.Locator, flatten(c.Content)))
		sources = append(sources, Source{
			ProjectID:  c.ProjectID,
			DocumentID: c.DocumentID,
			Locator:    c.Locator,
		})
	}
	return strings.Join(parts, "\n\n"), sources, nil
}

// PageContext loads the chunks for one exact page of a document. An empty
// page yields an explanatory message, not an error.
func (b *ContextBuilder) PageContext(ctx context.Context, projectID, documentID int64, locator int) (string, error) {
	chunks, err := b.chunks.ListByLocator(ctx, projectID, documentID, locator)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return fmt.Sprintf("No text chunks found for doc %d, page %d. "+
			"Either the page has no text, or it hasn't been indexed yet.", documentID, locator), nil
	}
	header := fmt.Sprintf("Diagram / page context for project %d, document %d, page %d:\n\n",
		projectID, documentID, locator)
	return header + joinFlattened(chunks), nil
}

// SummaryContext builds the raw excerpt block the summarizer works from:
// chunk texts only, project-scoped, no attribution lines and no global
// fallback.
func (b *ContextBuilder) SummaryContext(ctx context.Context, projectID int64, maxChunks uint) (string, error) {
	chunks, err := b.chunks.ListByProject(ctx, projectID, maxChunks)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "No document chunks are indexed for this project yet.", nil
	}
	return joinFlattened(chunks), nil
}

func joinFlattened(chunks []model.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, flatten(c.Content))
	}
	return strings.Join(parts, "\n\n")
}

func flatten(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
}
