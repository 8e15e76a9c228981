package events

import "time"

const (
	TypeQueryAnswered    = "QUERY_ANSWERED"
	TypePassagesIngested = "PASSAGES_INGESTED"
)

// NewQueryAnswered records a successfully answered farmer question.
func NewQueryAnswered(intent string, sourceCount int, durationMs int64) Event {
	return BaseEvent{
		Type: TypeQueryAnswered,
		Data: map[string]interface{}{
			"intent":       intent,
			"source_count": sourceCount,
			"duration_ms":  durationMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewPassagesIngested records a completed ingest run for one corpus.
func NewPassagesIngested(corpus, sourceFile string, chunkCount int) Event {
	return BaseEvent{
		Type: TypePassagesIngested,
		Data: map[string]interface{}{
			"corpus":      corpus,
			"source_file": sourceFile,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
