package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"ai-chathub-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error { return nil }

var _ logger.ILogger = quietLogger{}

func recvOrTimeout(t *testing.T, ch chan []byte) ([]byte, bool) {
	t.Helper()
	select {
	case data, open := <-ch:
		return data, open
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting on client channel")
		return nil, false
	}
}

func TestSendDeliversNoticeToRegisteredClient(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userId := uuid.New()
	client := &Client{Hub: hub, UserID: userId, Send: make(chan []byte, 4)}
	hub.register <- client

	hub.Send(userId, Notice{Type: "STREAM_COMPLETED", ChatId: uuid.NewString()})

	data, open := recvOrTimeout(t, client.Send)
	assert.True(t, open)

	var envelope struct {
		Type string `json:"type"`
		Data Notice `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, "notice", envelope.Type)
	assert.Equal(t, "STREAM_COMPLETED", envelope.Data.Type)
}

func TestSendDropsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userId := uuid.New()
	// Buffer of one and no write pump draining it, so the second notice
	// finds the buffer full.
	client := &Client{Hub: hub, UserID: userId, Send: make(chan []byte, 1)}
	hub.register <- client

	hub.Send(userId, Notice{Type: "STREAM_COMPLETED"})
	hub.Send(userId, Notice{Type: "STREAM_COMPLETED"})

	// The buffered notice arrives, then the unregister handler closes the
	// channel exactly once.
	_, open := recvOrTimeout(t, client.Send)
	assert.True(t, open)
	_, open = recvOrTimeout(t, client.Send)
	assert.False(t, open)

	// A later send to the departed user must not panic on a closed channel.
	hub.Send(userId, Notice{Type: "STREAM_FAILED"})
}
