package service

import (
	"context"
	"encoding/json"

	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/entity"
	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/internal/repository/contract"
	"agri-advisory-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	passageRepo       contract.PassageChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	passageRepo contract.PassageChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		passageRepo:       passageRepo,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedPassageBatchMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal embed batch", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	corpus := entity.Corpus(payload.Corpus)
	if !corpus.Valid() {
		cs.logger.Error("consumer", "embed batch names unknown corpus", map[string]interface{}{
			"corpus": payload.Corpus,
		})
		msg.Ack()
		return
	}

	chunks := make([]*entity.PassageChunk, 0, len(payload.Chunks))
	for i, content := range payload.Chunks {
		resp, err := cs.embeddingProvider.Generate(content, embedding.TaskRetrievalDocument)
		if err != nil {
			cs.logger.Error("consumer", "embedding failed, batch will be retried", map[string]interface{}{
				"source_file": payload.SourceFile,
				"page":        payload.Page,
				"chunk":       i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}

		vector := embedding.NormalizeVector(resp.Embedding.Values)
		chunks = append(chunks, &entity.PassageChunk{
			Corpus:     corpus,
			SourceFile: payload.SourceFile,
			Page:       payload.Page,
			ChunkIndex: i,
			Content:    content,
			Embedding:  vector,
			Metadata: map[string]interface{}{
				"source": payload.SourceFile,
				"page":   payload.Page,
				"type":   payload.Corpus,
			},
		})
	}

	if len(chunks) > 0 {
		if err := cs.passageRepo.CreateBulk(ctx, chunks); err != nil {
			cs.logger.Error("consumer", "failed to store embedded chunks", map[string]interface{}{
				"source_file": payload.SourceFile,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
	}

	cs.logger.Info("consumer", "embed batch stored", map[string]interface{}{
		"corpus":      payload.Corpus,
		"source_file": payload.SourceFile,
		"page":        payload.Page,
		"chunks":      len(chunks),
	})
	msg.Ack()
}
