package retrieval

import (
	"context"
	"fmt"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/internal/repository/contract"
	"agri-advisory-be/pkg/embedding"
)

// Passage is a retrieved chunk with provenance, scoped to one request.
// Order within a slice of Passages is the store's relevance order and
// is never re-sorted downstream.
type Passage struct {
	Content    string
	SourceFile string
	Page       int
	Corpus     entity.Corpus
}

// Store is the per-corpus query contract: nearest-neighbor search over
// embedded chunks, returning the top k passages in relevance order.
type Store interface {
	Search(ctx context.Context, question string, k int) ([]Passage, error)
}

// Retriever implements Store by embedding the question and running a
// pgvector similarity search restricted to a single corpus.
type Retriever struct {
	corpus            entity.Corpus
	embeddingProvider embedding.EmbeddingProvider
	repo              contract.PassageChunkRepository
	logger            logger.ILogger
}

var _ Store = &Retriever{}

func NewRetriever(
	corpus entity.Corpus,
	embeddingProvider embedding.EmbeddingProvider,
	repo contract.PassageChunkRepository,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		corpus:            corpus,
		embeddingProvider: embeddingProvider,
		repo:              repo,
		logger:            log,
	}
}

func (r *Retriever) Search(ctx context.Context, question string, k int) ([]Passage, error) {
	if k <= 0 {
		return []Passage{}, nil
	}

	res, err := r.embeddingProvider.Generate(question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query for %s corpus: %w", r.corpus, err)
	}

	chunks, err := r.repo.SearchSimilar(ctx, r.corpus, res.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search in %s corpus: %w", r.corpus, err)
	}

	passages := make([]Passage, len(chunks))
	for i, c := range chunks {
		passages[i] = Passage{
			Content:    c.Content,
			SourceFile: c.SourceFile,
			Page:       c.Page,
			Corpus:     c.Corpus,
		}
	}

	r.logger.Debug("retrieval", "Corpus searched", map[string]interface{}{
		"corpus": string(r.corpus),
		"k":      k,
		"found":  len(passages),
	})

	return passages, nil
}
