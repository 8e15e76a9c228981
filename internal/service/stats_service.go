package service

import (
	"context"
	"sync"
	"time"

	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/repository/contract"
	"agri-advisory-be/internal/repository/specification"
	"agri-advisory-be/pkg/database"
	"agri-advisory-be/pkg/rag/intent"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// IStatsService tracks query volume and exposes knowledge base health.
type IStatsService interface {
	RecordQuery(intentLabel string)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Health(ctx context.Context, ready bool) *dto.HealthResponse
}

type statsService struct {
	passageRepo contract.PassageChunkRepository
	db          *gorm.DB
	counters    *gocache.Cache
	mu          sync.Mutex

	diseaseDocument string
	schemeDocument  string
}

func NewStatsService(passageRepo contract.PassageChunkRepository, db *gorm.DB, diseaseDocument, schemeDocument string) IStatsService {
	return &statsService{
		passageRepo: passageRepo,
		db:          db,
		// Counters roll over daily so stats reflect recent traffic.
		counters:        gocache.New(24*time.Hour, time.Hour),
		diseaseDocument: diseaseDocument,
		schemeDocument:  schemeDocument,
	}
}

func (s *statsService) RecordQuery(intentLabel string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.counters.Get(intentLabel); !found {
		s.counters.SetDefault(intentLabel, int64(0))
	}
	s.counters.IncrementInt64(intentLabel, 1)
}

func (s *statsService) intentCount(intentLabel string) int64 {
	if v, found := s.counters.Get(intentLabel); found {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}

func (s *statsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	diseaseCount, err := s.passageRepo.Count(ctx, specification.ByCorpus{Corpus: entity.CorpusDisease})
	if err != nil {
		return nil, err
	}
	schemeCount, err := s.passageRepo.Count(ctx, specification.ByCorpus{Corpus: entity.CorpusScheme})
	if err != nil {
		return nil, err
	}

	byIntent := map[string]int64{
		string(intent.IntentDisease): s.intentCount(string(intent.IntentDisease)),
		string(intent.IntentScheme):  s.intentCount(string(intent.IntentScheme)),
		string(intent.IntentHybrid):  s.intentCount(string(intent.IntentHybrid)),
	}
	var total int64
	for _, n := range byIntent {
		total += n
	}

	return &dto.StatsResponse{
		TotalDocuments: 2,
		VectorStores: map[string]dto.KnowledgeBaseStats{
			"disease_kb": {
				Status:     storeStatus(diseaseCount),
				Document:   s.diseaseDocument,
				ChunkCount: diseaseCount,
			},
			"scheme_kb": {
				Status:     storeStatus(schemeCount),
				Document:   s.schemeDocument,
				ChunkCount: schemeCount,
			},
		},
		Queries: dto.QueryStats{
			Total:    total,
			ByIntent: byIntent,
		},
	}, nil
}

func (s *statsService) Health(ctx context.Context, ready bool) *dto.HealthResponse {
	dbUp := s.db != nil && database.Ping(s.db) == nil

	diseaseUp := false
	schemeUp := false
	if dbUp {
		if n, err := s.passageRepo.Count(ctx, specification.ByCorpus{Corpus: entity.CorpusDisease}); err == nil && n > 0 {
			diseaseUp = true
		}
		if n, err := s.passageRepo.Count(ctx, specification.ByCorpus{Corpus: entity.CorpusScheme}); err == nil && n > 0 {
			schemeUp = true
		}
	}

	status := "healthy"
	if !dbUp || !ready {
		status = "degraded"
	}

	return &dto.HealthResponse{
		Status: status,
		Services: dto.HealthServices{
			Database: dbUp,
			Agent:    ready,
			VectorStores: map[string]bool{
				"disease": diseaseUp,
				"scheme":  schemeUp,
			},
		},
	}
}

func storeStatus(chunkCount int64) string {
	if chunkCount > 0 {
		return "active"
	}
	return "empty"
}
