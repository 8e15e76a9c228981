package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Implementations are composable
// and applied in order by the repository.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
