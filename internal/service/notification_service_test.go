package service

import (
	"context"
	"testing"

	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/websocket"
	"ai-chathub-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDelivery struct {
	userIds []uuid.UUID
	notices []websocket.Notice
}

func (d *captureDelivery) Send(userID uuid.UUID, notice websocket.Notice) {
	d.userIds = append(d.userIds, userID)
	d.notices = append(d.notices, notice)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

func TestHandleEventDeliversSubjectPrefixedTypes(t *testing.T) {
	delivery := &captureDelivery{}
	svc := NewNotificationService(nil, delivery, nopLogger{})
	userId := uuid.New()

	// NATS subjects carry the stream name prefix; the notice type must be
	// the bare code.
	event := events.BaseEvent{
		Type: "events." + events.TypeStreamCompleted,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"chat_id":   uuid.New().String(),
			"stream_id": uuid.New().String(),
		},
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	require.Len(t, delivery.notices, 1)
	assert.Equal(t, userId, delivery.userIds[0])
	assert.Equal(t, events.TypeStreamCompleted, delivery.notices[0].Type)
}

func TestHandleEventFailureCarriesErrorMessage(t *testing.T) {
	delivery := &captureDelivery{}
	svc := NewNotificationService(nil, delivery, nopLogger{})
	userId := uuid.New()

	event := events.BaseEvent{
		Type: "events." + events.TypeStreamFailed,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"error":   "upstream gave up",
		},
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	require.Len(t, delivery.notices, 1)
	assert.Equal(t, events.TypeStreamFailed, delivery.notices[0].Type)
	assert.Equal(t, map[string]interface{}{"error": "upstream gave up"}, delivery.notices[0].Data)
}

func TestHandleEventIgnoresAuditOnlyEvents(t *testing.T) {
	delivery := &captureDelivery{}
	svc := NewNotificationService(nil, delivery, nopLogger{})

	event := events.BaseEvent{
		Type: "events." + events.TypeChatCreated,
		Data: map[string]interface{}{"user_id": uuid.New().String()},
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, delivery.notices)
}

func TestHandleEventDropsMissingUserId(t *testing.T) {
	delivery := &captureDelivery{}
	svc := NewNotificationService(nil, delivery, nopLogger{})

	event := events.BaseEvent{
		Type: "events." + events.TypeStreamCompleted,
		Data: map[string]interface{}{},
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, delivery.notices)
}
