package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/events"
	pktNats "ai-chathub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event topic, writes an audit row per
// event, and forwards the event to NATS for cross-service delivery.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
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
	var envelope dto.EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	audit := &entity.SystemLog{
		Id:        uuid.New(),
		EventType: envelope.Type,
		Details:   envelope.Data,
		CreatedAt: time.Now(),
	}
	if err := uow.SystemLogRepository().Create(ctx, audit); err != nil {
		cs.logger.Error("Consumer", "Failed to write audit log", map[string]interface{}{
			"event_type": envelope.Type,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.natsPub != nil {
		event := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			// Audit row is already written; NATS delivery is best effort.
			cs.logger.Warn("Consumer", "Failed to forward event to NATS", map[string]interface{}{
				"event_type": envelope.Type,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}
