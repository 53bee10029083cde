package agent

import (
	"context"
	"fmt"
)

const defaultSummaryMaxChunks = 25

type SummaryAgent struct {
	contexts  *ContextBuilder
	gen       Generator
	maxChunks uint
}

func NewSummaryAgent(contexts *ContextBuilder, gen Generator, maxChunks uint) *SummaryAgent {
	if maxChunks == 0 {
		maxChunks = defaultSummaryMaxChunks
	}
	return &SummaryAgent{contexts: contexts, gen: gen, maxChunks: maxChunks}
}

// Answer summarizes the project from its first chunks. Without a model
// credential the raw excerpt block itself is the degraded-mode summary.
func (a *SummaryAgent) Answer(ctx context.Context, projectID int64, question string) (string, error) {
	baseContext, err := a.contexts.SummaryContext(ctx, projectID, a.maxChunks)
	if err != nil {
		return "", err
	}
	if a.gen == nil || !a.gen.Available() {
		return baseContext, nil
	}
	prompt := fmt.Sprintf("You are a senior electrical engineer summarizing a utility-scale solar project. "+
		"You will be given some raw excerpts from project documents. "+
		"Write a clear, concise summary or respond to the user's request, "+
		"but only use the information provided in the context.\n\n"+
		"Context excerpts:\n%s\n\n"+
		"User request: %s\n\n"+
		"Write a 1-3 paragraph summary that is useful for an engineer reviewing this project.", baseContext, question)
	return a.gen.Generate(ctx, prompt)
}
