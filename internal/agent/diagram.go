package agent

import (
	"context"
	"strings"
)

const msgNoPDF = "I couldn't find any PDF documents for this project to analyze as a diagram. " +
	"Please upload a one-line or layout drawing as a PDF."

type DiagramAgent struct {
	contexts *ContextBuilder
	docs     DocumentStore
	gen      Generator
}

func NewDiagramAgent(contexts *ContextBuilder, docs DocumentStore, gen Generator) *DiagramAgent {
	return &DiagramAgent{contexts: contexts, docs: docs, gen: gen}
}

// Answer resolves the diagram question against the text already extracted
// from one page of a PDF; no visual analysis happens here. documentID 0 means
// "pick the newest PDF in the project", page 0 means page 1.
func (a *DiagramAgent) Answer(ctx context.Context, projectID int64, question string, documentID int64, page int) (string, error) {
	if page <= 0 {
		page = 1
	}
	if documentID == 0 {
		docs, err := a.docs.ListByProject(ctx, projectID)
		if err != nil {
			return "", err
		}
		for _, d := range docs {
			if strings.HasSuffix(strings.ToLower(d.FileName), ".pdf") {
				documentID = d.ID
				break
			}
		}
		if documentID == 0 {
			return msgNoPDF, nil
		}
	}
	pageContext, err := a.contexts.PageContext(ctx, projectID, documentID, page)
	if err != nil {
		return "", err
	}
	if a.gen == nil || !a.gen.Available() {
		return pageContext, nil
	}
	return answerFromContext(ctx, a.gen, question, pageContext)
}
