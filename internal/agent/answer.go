package agent

import (
	"context"
	"fmt"
)

const (
	msgNotConfigured = "AI is not configured yet. " +
		"Please configure a model provider on the backend to enable document-grounded answers."
	msgNoContext = "I couldn't find any indexed text for this project yet. " +
		"Try uploading project documents or checking that extraction worked."
)

// answerFromContext is the shared context-grounded prompt used by the Q&A and
// diagram agents. Degraded modes (no credential, no context) return fixed
// messages; a model failure propagates to the caller.
func answerFromContext(ctx context.Context, gen Generator, question, docContext string) (string, error) {
	if gen == nil || !gen.Available() {
		return msgNotConfigured, nil
	}
	if docContext == "" {
		return msgNoContext, nil
	}
	prompt := fmt.Sprintf("You are a senior electrical engineer specializing in utility-scale solar PV, "+
		"BESS, and substation design. Answer based ONLY on the provided context from "+
		"project documents. If the answer is not in the context, say you don't know.\n\n"+
		"Context from project documents:\n%s\n\n"+
		"Question: %s\n\n"+
		"Answer in 2-5 clear sentences, and keep it practical for an engineer.", docContext, question)
	return gen.Generate(ctx, prompt)
}
