package service

import (
	"context"
	"strings"
	"time"

	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/websocket"
	"ai-chathub-be/pkg/events"
	pktNats "ai-chathub-be/pkg/nats"

	"github.com/google/uuid"
)

// NoticeDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NoticeDelivery interface {
	Send(userID uuid.UUID, notice websocket.Notice)
}

// NotificationService bridges the event bus to connected clients: stream
// lifecycle events are pushed to the owning user so the UI reacts without
// polling.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NoticeDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NoticeDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notify-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// Strip "events." prefix from type if present (NATS subject includes stream name)
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	switch typeCode {
	case events.TypeStreamCompleted, events.TypeStreamFailed:
	default:
		// Other events are audit-only.
		return nil
	}

	payload := event.Payload()
	userIdStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Event without valid user_id, dropping", map[string]interface{}{
			"type": typeCode,
		})
		return nil
	}

	chatId, _ := payload["chat_id"].(string)
	streamId, _ := payload["stream_id"].(string)

	notice := websocket.Notice{
		Type:      typeCode,
		ChatId:    chatId,
		StreamId:  streamId,
		CreatedAt: time.Now(),
	}
	if typeCode == events.TypeStreamFailed {
		if msg, ok := payload["error"].(string); ok {
			notice.Data = map[string]interface{}{"error": msg}
		}
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notice)
	}
	return nil
}
