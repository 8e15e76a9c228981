package implementation

import (
	"context"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/mapper"
	"agri-advisory-be/internal/model"
	"agri-advisory-be/internal/repository/contract"
	"agri-advisory-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PassageChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PassageChunkMapper
}

func NewPassageChunkRepository(db *gorm.DB) contract.PassageChunkRepository {
	return &PassageChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewPassageChunkMapper(),
	}
}

func (r *PassageChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PassageChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.PassageChunk) error {
	models := make([]*model.PassageChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PassageChunkRepositoryImpl) DeleteByCorpus(ctx context.Context, corpus entity.Corpus) error {
	// Hard delete: re-ingest fully replaces the corpus
	return r.db.WithContext(ctx).Unscoped().
		Where("corpus = ?", string(corpus)).
		Delete(&model.PassageChunk{}).Error
}

func (r *PassageChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.PassageChunk{}).Count(&count).Error
	return count, err
}

func (r *PassageChunkRepositoryImpl) SearchSimilar(ctx context.Context, corpus entity.Corpus, embedding []float32, limit int) ([]*entity.PassageChunk, error) {
	if limit <= 0 {
		return []*entity.PassageChunk{}, nil
	}
	var models []*model.PassageChunk

	// pgvector cosine distance: embedding_value <=> vector
	err := r.db.WithContext(ctx).
		Where("corpus = ?", string(corpus)).
		Where("deleted_at IS NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	entities := make([]*entity.PassageChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
