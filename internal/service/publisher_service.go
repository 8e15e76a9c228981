package service

import (
	"context"
	"encoding/json"
	"fmt"

	"agri-advisory-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService queues passage batches for embedding.
type IPublisherService interface {
	PublishEmbedPassageBatch(ctx context.Context, payload *dto.EmbedPassageBatchMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishEmbedPassageBatch(ctx context.Context, payload *dto.EmbedPassageBatchMessage) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal embed batch: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("failed to publish embed batch: %w", err)
	}

	return nil
}
