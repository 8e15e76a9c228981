package service

import (
	"context"

	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/pkg/events"
	"agri-advisory-be/pkg/nats"
	"agri-advisory-be/pkg/rag/pipeline"
)

// IAdvisoryService is the application-facing surface for farmer
// questions.
type IAdvisoryService interface {
	Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error)
	TestIntent(ctx context.Context, request *dto.QueryRequest) (*dto.TestIntentResponse, error)
}

type advisoryService struct {
	pipeline     *pipeline.Pipeline
	classifier   pipeline.Classifier
	statsService IStatsService
	publisher    *nats.Publisher
	logger       logger.ILogger
}

func NewAdvisoryService(
	p *pipeline.Pipeline,
	classifier pipeline.Classifier,
	statsService IStatsService,
	publisher *nats.Publisher,
	logger logger.ILogger,
) IAdvisoryService {
	return &advisoryService{
		pipeline:     p,
		classifier:   classifier,
		statsService: statsService,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *advisoryService) Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	result, err := s.pipeline.Process(ctx, request.Question)
	if err != nil {
		return nil, err
	}

	s.statsService.RecordQuery(string(result.Intent))

	if s.publisher != nil {
		event := events.NewQueryAnswered(string(result.Intent), len(result.Sources), result.Duration.Milliseconds())
		if err := s.publisher.Publish(ctx, event); err != nil {
			// The answer is already computed; a bus outage must not
			// fail the request.
			s.logger.Warn("advisory", "failed to publish query event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	sources := make([]dto.SourceDTO, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, dto.SourceDTO{
			SourceFile: src.SourceFile,
			Page:       src.Page,
			Corpus:     string(src.Corpus),
		})
	}

	return &dto.QueryResponse{
		Success:    true,
		Intent:     string(result.Intent),
		Answer:     result.Answer,
		Sources:    sources,
		Confidence: nil,
		DurationMs: result.Duration.Milliseconds(),
	}, nil
}

func (s *advisoryService) TestIntent(ctx context.Context, request *dto.QueryRequest) (*dto.TestIntentResponse, error) {
	detected, err := s.classifier.Classify(ctx, request.Question)
	if err != nil {
		return nil, err
	}

	return &dto.TestIntentResponse{
		Question:       request.Question,
		DetectedIntent: string(detected),
	}, nil
}
