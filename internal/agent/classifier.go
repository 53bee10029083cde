package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Keyword rules run before any model call: explicit mentions of a drawing or
// a summary are unambiguous and must never be misrouted.
var diagramKeywords = []string{
	"one-line",
	"one line",
	"single line",
	"sld",
	"diagram",
	"schematic",
	"layout",
	"on the drawing",
	"in the drawing",
	"on the one line",
	"on the single line",
}

var summaryKeywords = []string{
	"summary",
	"overview",
	"high level",
	"explain this project",
	"what is this project",
	"give me an overview",
}

type Classifier struct {
	gen Generator
}

func NewClassifier(gen Generator) *Classifier {
	return &Classifier{gen: gen}
}

// Classify never fails: keyword rules first, then a best-effort model call
// whose errors degrade to the qa default.
func (c *Classifier) Classify(ctx context.Context, question string) Intent {
	q := strings.ToLower(question)
	for _, k := range diagramKeywords {
		if strings.Contains(q, k) {
			return IntentDiagram
		}
	}
	for _, k := range summaryKeywords {
		if strings.Contains(q, k) {
			return IntentSummary
		}
	}
	if c.gen == nil || !c.gen.Available() {
		return IntentQA
	}

	prompt := fmt.Sprintf("You are a classifier for a solar engineering assistant. "+
		"You must categorize the user's intent into one of: "+
		"'qa' (question about project details), "+
		"'summary' (asking for a summary or overview), "+
		"'diagram' (question about the one-line, layout, or diagram), "+
		"'other'.\n\n"+
		"Question: %s\n\n"+
		"Return ONLY one of: qa, summary, diagram, other.", question)
	resp, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Warn("intent classification failed, defaulting to qa", zap.Error(err))
		return IntentQA
	}
	content := strings.ToLower(resp)
	switch {
	case strings.Contains(content, "diagram"):
		return IntentDiagram
	case strings.Contains(content, "summary"):
		return IntentSummary
	case strings.Contains(content, "qa"):
		return IntentQA
	}
	return IntentOther
}
