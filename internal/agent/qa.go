package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const defaultQAMaxChunks = 50

type QAAgent struct {
	contexts  *ContextBuilder
	gen       Generator
	maxChunks uint
}

func NewQAAgent(contexts *ContextBuilder, gen Generator, maxChunks uint) *QAAgent {
	if maxChunks == 0 {
		maxChunks = defaultQAMaxChunks
	}
	return &QAAgent{contexts: contexts, gen: gen, maxChunks: maxChunks}
}

func (a *QAAgent) Answer(ctx context.Context, projectID int64, question string) (string, error) {
	docContext, sources, err := a.contexts.ProjectContext(ctx, projectID, a.maxChunks)
	if err != nil {
		return "", err
	}
	answer, err := answerFromContext(ctx, a.gen, question, docContext)
	if err != nil {
		return "", err
	}
	if len(sources) > 0 {
		answer += "\n\nSources: " + formatCitations(sources)
	}
	return answer, nil
}

// formatCitations renders a deduplicated, sorted "Doc X Page Y" list.
func formatCitations(sources []Source) string {
	seen := make(map[string]struct{}, len(sources))
	cites := make([]string, 0, len(sources))
	for _, s := range sources {
		cite := fmt.Sprintf("Doc %d Page %d", s.DocumentID, s.Locator)
		if _, ok := seen[cite]; ok {
			continue
		}
		seen[cite] = struct{}{}
		cites = append(cites, cite)
	}
	sort.Strings(cites)
	return strings.Join(cites, ", ")
}
