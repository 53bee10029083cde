package agent

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
)

const ambiguousIntentPrefix = "I wasn't sure if this was a summary or diagram question, " +
	"so I answered it as a project Q&A.\n\n"

type IntentClassifier interface {
	Classify(ctx context.Context, question string) Intent
}

// Orchestrator is the single entry point for answering a question. It never
// persists anything; handler failures propagate so the API layer can record
// them as readable answers.
type Orchestrator struct {
	projects   ProjectStore
	classifier IntentClassifier
	qa         *QAAgent
	summary    *SummaryAgent
	diagram    *DiagramAgent
}

func NewOrchestrator(projects ProjectStore, classifier IntentClassifier, qa *QAAgent, summary *SummaryAgent, diagram *DiagramAgent) *Orchestrator {
	return &Orchestrator{projects: projects, classifier: classifier, qa: qa, summary: summary, diagram: diagram}
}

func (o *Orchestrator) Answer(ctx context.Context, projectID int64, question string) (Result, error) {
	if _, err := o.projects.Get(ctx, projectID); err != nil {
		if appErr.IsNotFound(err) {
			return Result{Answer: "Project not found.", Handler: HandlerOrchestrator, Intent: IntentOther}, nil
		}
		return Result{Handler: HandlerOrchestrator, Intent: IntentOther}, err
	}

	intent := o.classifier.Classify(ctx, question)
	logutil.GetLogger(ctx).Info("question routed",
		zap.Int64("project_id", projectID),
		zap.String("intent", string(intent)),
	)

	res := Result{Intent: intent}
	var err error
	switch intent {
	case IntentDiagram:
		res.Handler = HandlerDiagram
		res.Answer, err = o.diagram.Answer(ctx, projectID, question, 0, 0)
	case IntentSummary:
		res.Handler = HandlerSummary
		res.Answer, err = o.summary.Answer(ctx, projectID, question)
	case IntentQA:
		res.Handler = HandlerQA
		res.Answer, err = o.qa.Answer(ctx, projectID, question)
	default:
		// Ambiguous intent still gets an answer, framed as Q&A with an
		// explicit disclaimer.
		res.Handler = HandlerQA
		res.Answer, err = o.qa.Answer(ctx, projectID, question)
		if err == nil {
			res.Answer = ambiguousIntentPrefix + res.Answer
		}
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
