package contract

import (
	"context"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/repository/specification"
)

type PassageChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.PassageChunk) error
	DeleteByCorpus(ctx context.Context, corpus entity.Corpus) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs pgvector nearest-neighbor search within one
	// corpus, ordered by cosine distance (closest first).
	SearchSimilar(ctx context.Context, corpus entity.Corpus, embedding []float32, limit int) ([]*entity.PassageChunk, error)
}
