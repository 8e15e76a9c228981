package entity

import (
	"time"

	"github.com/google/uuid"
)

// Corpus identifies one of the two knowledge bases.
type Corpus string

const (
	CorpusDisease Corpus = "disease"
	CorpusScheme  Corpus = "scheme"
)

func (c Corpus) Valid() bool {
	return c == CorpusDisease || c == CorpusScheme
}

// PassageChunk is an embedded span of source document text with
// retained provenance (source file, page).
type PassageChunk struct {
	Id         uuid.UUID
	Corpus     Corpus
	SourceFile string
	Page       int
	ChunkIndex int
	Content    string
	Embedding  []float32
	Metadata   map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
