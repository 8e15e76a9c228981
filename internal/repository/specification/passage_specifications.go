package specification

import (
	"agri-advisory-be/internal/entity"

	"gorm.io/gorm"
)

// ByCorpus restricts results to a single knowledge base.
type ByCorpus struct {
	Corpus entity.Corpus
}

func (s ByCorpus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("corpus = ?", string(s.Corpus))
}
