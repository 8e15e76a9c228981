package bootstrap

import (
	"log"
	"sync/atomic"

	"agri-advisory-be/internal/config"
	"agri-advisory-be/internal/controller"
	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/internal/repository/implementation"
	"agri-advisory-be/internal/service"
	"agri-advisory-be/pkg/embedding"
	"agri-advisory-be/pkg/llm/factory"
	pktNats "agri-advisory-be/pkg/nats"
	"agri-advisory-be/pkg/rag/assemble"
	"agri-advisory-be/pkg/rag/intent"
	"agri-advisory-be/pkg/rag/pipeline"
	"agri-advisory-be/pkg/rag/retrieval"
	"agri-advisory-be/pkg/rag/synthesis"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AdvisoryController controller.IAdvisoryController

	// Background services (exposed for main.go to run)
	ConsumerService  service.IConsumerService
	PublisherService service.IPublisherService

	Logger logger.ILogger

	natsPublisher *pktNats.Publisher
	ready         atomic.Bool
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c.Logger = sysLogger

	passageRepo := implementation.NewPassageChunkRepository(db)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS is optional; the service answers queries without the bus.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	c.natsPublisher = natsPub

	// 4. Advisory pipeline
	diseaseStore := retrieval.NewRetriever(entity.CorpusDisease, embeddingProvider, passageRepo, sysLogger)
	schemeStore := retrieval.NewRetriever(entity.CorpusScheme, embeddingProvider, passageRepo, sysLogger)
	router := retrieval.NewRouter(diseaseStore, schemeStore, cfg.Retrieval.TopK, sysLogger)

	classifier := intent.NewClassifier(llmProvider, sysLogger)
	assembler := assemble.NewAssembler()
	synthesizer := synthesis.NewSynthesizer(llmProvider, sysLogger)
	advisoryPipeline := pipeline.NewPipeline(classifier, router, assembler, synthesizer, sysLogger)

	// 5. Services
	statsService := service.NewStatsService(passageRepo, db, cfg.Ingest.DiseasePDF, cfg.Ingest.SchemePDF)
	advisoryService := service.NewAdvisoryService(advisoryPipeline, classifier, statsService, natsPub, sysLogger)

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Ingest.TopicName, passageRepo, embeddingProvider, sysLogger)
	c.PublisherService = service.NewPublisherService(pubSub, cfg.Ingest.TopicName)

	// 6. Controllers
	c.AdvisoryController = controller.NewAdvisoryController(advisoryService, statsService, c.Ready)

	c.ready.Store(true)
	return c
}

// Ready reports whether the container finished wiring the pipeline.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Close releases external connections.
func (c *Container) Close() {
	if c.natsPublisher != nil {
		c.natsPublisher.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
