package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/pkg/rag/intent"
	"agri-advisory-be/pkg/rag/retrieval"
)

// Stage failures share one outward behavior but stay distinguishable
// for logging and tests.
var (
	ErrClassification = errors.New("intent classification failed")
	ErrRetrieval      = errors.New("passage retrieval failed")
	ErrSynthesis      = errors.New("answer synthesis failed")
)

// Classifier resolves a farmer question to a routing intent.
type Classifier interface {
	Classify(ctx context.Context, question string) (intent.Intent, error)
}

// Router fetches passages from the knowledge bases selected by intent.
type Router interface {
	Retrieve(ctx context.Context, queryIntent intent.Intent, question string) (*retrieval.Result, error)
}

// Assembler folds retrieved passages into a single context block.
type Assembler interface {
	Build(queryIntent intent.Intent, result *retrieval.Result) string
}

// Synthesizer produces the final answer from question plus context.
type Synthesizer interface {
	Synthesize(ctx context.Context, queryIntent intent.Intent, question, assembledContext string) (string, error)
}

// Result is the complete answer for one farmer question. Sources keep
// retrieval order, disease passages ahead of scheme passages.
type Result struct {
	Intent   intent.Intent
	Answer   string
	Sources  []retrieval.Passage
	Duration time.Duration
}

// Pipeline runs the four advisory stages in sequence. A failure at any
// stage aborts the run; no partial result is returned.
type Pipeline struct {
	classifier  Classifier
	router      Router
	assembler   Assembler
	synthesizer Synthesizer
	logger      logger.ILogger
}

func NewPipeline(classifier Classifier, router Router, assembler Assembler, synthesizer Synthesizer, logger logger.ILogger) *Pipeline {
	return &Pipeline{
		classifier:  classifier,
		router:      router,
		assembler:   assembler,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

func (p *Pipeline) Process(ctx context.Context, question string) (*Result, error) {
	start := time.Now()

	queryIntent, err := p.classifier.Classify(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	retrieved, err := p.router.Retrieve(ctx, queryIntent, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	assembled := p.assembler.Build(queryIntent, retrieved)

	answer, err := p.synthesizer.Synthesize(ctx, queryIntent, question, assembled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	result := &Result{
		Intent:   queryIntent,
		Answer:   answer,
		Sources:  retrieved.Sources(),
		Duration: time.Since(start),
	}

	p.logger.Info("pipeline", "question answered", map[string]interface{}{
		"intent":      string(result.Intent),
		"sources":     len(result.Sources),
		"duration_ms": result.Duration.Milliseconds(),
	})

	return result, nil
}
