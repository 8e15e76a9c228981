package dto

// EmbedPassageBatchMessage is the payload exchanged on the ingest bus.
// The publisher chunks a document and the consumer embeds and stores
// each chunk.
type EmbedPassageBatchMessage struct {
	Corpus     string   `json:"corpus"`
	SourceFile string   `json:"source_file"`
	Page       int      `json:"page"`
	Chunks     []string `json:"chunks"`
}
