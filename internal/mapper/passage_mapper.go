package mapper

import (
	"encoding/json"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type PassageChunkMapper struct{}

func NewPassageChunkMapper() *PassageChunkMapper {
	return &PassageChunkMapper{}
}

func (m *PassageChunkMapper) ToModel(e *entity.PassageChunk) *model.PassageChunk {
	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.PassageChunk{
		Id:             e.Id,
		Corpus:         string(e.Corpus),
		SourceFile:     e.SourceFile,
		Page:           e.Page,
		ChunkIndex:     e.ChunkIndex,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *PassageChunkMapper) ToEntity(mo *model.PassageChunk) *entity.PassageChunk {
	var metadata map[string]interface{}
	if len(mo.Metadata) > 0 {
		_ = json.Unmarshal(mo.Metadata, &metadata)
	}

	e := &entity.PassageChunk{
		Id:         mo.Id,
		Corpus:     entity.Corpus(mo.Corpus),
		SourceFile: mo.SourceFile,
		Page:       mo.Page,
		ChunkIndex: mo.ChunkIndex,
		Content:    mo.Content,
		Embedding:  mo.EmbeddingValue.Slice(),
		Metadata:   metadata,
		CreatedAt:  mo.CreatedAt,
	}
	if !mo.UpdatedAt.IsZero() {
		t := mo.UpdatedAt
		e.UpdatedAt = &t
	}
	return e
}
