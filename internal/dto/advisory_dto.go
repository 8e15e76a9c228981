package dto

type QueryRequest struct {
	Question string `json:"question" validate:"required"`
}

type SourceDTO struct {
	SourceFile string `json:"source_file"`
	Page       int    `json:"page"`
	Corpus     string `json:"corpus"`
}

type QueryResponse struct {
	Success    bool        `json:"success"`
	Intent     string      `json:"intent"`
	Answer     string      `json:"answer"`
	Sources    []SourceDTO `json:"sources"`
	Confidence *float64    `json:"confidence"`
	DurationMs int64       `json:"duration_ms"`
}

type TestIntentResponse struct {
	Question       string `json:"question"`
	DetectedIntent string `json:"detected_intent"`
}

type HealthResponse struct {
	Status   string         `json:"status"`
	Services HealthServices `json:"services"`
}

type HealthServices struct {
	Database     bool            `json:"database"`
	Agent        bool            `json:"agent"`
	VectorStores map[string]bool `json:"vector_stores"`
}

type KnowledgeBaseStats struct {
	Status     string `json:"status"`
	Document   string `json:"document"`
	ChunkCount int64  `json:"chunk_count"`
}

type StatsResponse struct {
	TotalDocuments int                           `json:"total_documents"`
	VectorStores   map[string]KnowledgeBaseStats `json:"vector_stores"`
	Queries        QueryStats                    `json:"queries"`
}

type QueryStats struct {
	Total    int64            `json:"total"`
	ByIntent map[string]int64 `json:"by_intent"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
