package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"agri-advisory-be/internal/config"
	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/internal/repository/contract"
	"agri-advisory-be/internal/repository/implementation"
	"agri-advisory-be/internal/repository/specification"
	"agri-advisory-be/internal/service"
	"agri-advisory-be/pkg/database"
	"agri-advisory-be/pkg/embedding"
	"agri-advisory-be/pkg/events"
	pktNats "agri-advisory-be/pkg/nats"
	"agri-advisory-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
	"github.com/ledongthuc/pdf"
)

// The ingest CLI rebuilds both knowledge bases from their source PDFs.
// Pages are chunked, queued on the in-process bus and embedded by the
// consumer, then the tool waits for the store counts to settle.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	passageRepo := implementation.NewPassageChunkRepository(db)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	consumer := service.NewConsumerService(pubSub, cfg.Ingest.TopicName, passageRepo, embeddingProvider, sysLogger)
	publisher := service.NewPublisherService(pubSub, cfg.Ingest.TopicName)

	ctx := context.Background()
	if err := consumer.Consume(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	corpora := []corpusDocument{
		{entity.CorpusDisease, cfg.Ingest.DiseasePDF},
		{entity.CorpusScheme, cfg.Ingest.SchemePDF},
	}

	expected := map[entity.Corpus]int64{}
	for _, c := range corpora {
		color.Cyan("Processing %s (%s)...", c.path, c.corpus)

		n, err := ingestDocument(ctx, publisher, passageRepo, c.corpus, c.path, cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
		if err != nil {
			color.Red("Failed to ingest %s: %v", c.path, err)
			log.Fatal(err)
		}
		expected[c.corpus] = n
		color.Cyan("Queued %d chunks for %s", n, c.corpus)
	}

	if err := waitForCounts(ctx, passageRepo, expected, 15*time.Minute); err != nil {
		color.Red("Ingest did not complete: %v", err)
		log.Fatal(err)
	}

	announceIngested(ctx, cfg.App.NatsURL, sysLogger, corpora, expected)

	color.Green("Ingest complete: %d disease chunks, %d scheme chunks",
		expected[entity.CorpusDisease], expected[entity.CorpusScheme])
}

type corpusDocument struct {
	corpus entity.Corpus
	path   string
}

// announceIngested publishes one PASSAGES_INGESTED event per corpus.
// The bus is optional for ingest; without NATS the rebuild still
// succeeded, so failures only warn.
func announceIngested(ctx context.Context, natsURL string, sysLogger logger.ILogger, corpora []corpusDocument, counts map[entity.Corpus]int64) {
	publisher, err := pktNats.NewPublisher(natsURL, sysLogger)
	if err != nil {
		color.Yellow("NATS unavailable, skipping ingest events: %v", err)
		return
	}
	defer publisher.Close()

	for _, c := range corpora {
		event := events.NewPassagesIngested(string(c.corpus), c.path, int(counts[c.corpus]))
		if err := publisher.Publish(ctx, event); err != nil {
			color.Yellow("Failed to publish ingest event for %s: %v", c.corpus, err)
		}
	}
}

func ingestDocument(
	ctx context.Context,
	publisher service.IPublisherService,
	repo contract.PassageChunkRepository,
	corpus entity.Corpus,
	path string,
	chunkSize, chunkOverlap int,
) (int64, error) {
	// Rebuild from scratch so re-runs stay idempotent.
	if err := repo.DeleteByCorpus(ctx, corpus); err != nil {
		return 0, fmt.Errorf("clearing corpus %s: %w", corpus, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var total int64
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			color.Yellow("Skipping page %d of %s: %v", pageNum, path, err)
			continue
		}

		chunks := utils.SplitText(text, chunkSize, chunkOverlap)
		if len(chunks) == 0 {
			continue
		}

		msg := &dto.EmbedPassageBatchMessage{
			Corpus:     string(corpus),
			SourceFile: path,
			Page:       pageNum,
			Chunks:     chunks,
		}
		if err := publisher.PublishEmbedPassageBatch(ctx, msg); err != nil {
			return 0, fmt.Errorf("publishing page %d: %w", pageNum, err)
		}
		total += int64(len(chunks))
	}

	return total, nil
}

func waitForCounts(ctx context.Context, repo contract.PassageChunkRepository, expected map[entity.Corpus]int64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		done := true
		var stored int64
		for corpus, want := range expected {
			n, err := repo.Count(ctx, specification.ByCorpus{Corpus: corpus})
			if err != nil {
				return err
			}
			stored += n
			if n < want {
				done = false
			}
		}
		if done {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for embeddings, %d chunks stored so far", stored)
		}

		color.Yellow("Embedding in progress: %d chunks stored...", stored)
		time.Sleep(2 * time.Second)
	}
}
