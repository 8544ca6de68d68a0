package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/pkg/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct{}

func (fakeChatService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartChatRequest) (*dto.StartChatResponse, error) {
	return &dto.StartChatResponse{Id: uuid.New(), Name: "New Chat"}, nil
}
func (fakeChatService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	return nil, nil
}
func (fakeChatService) GetHistory(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
	return nil, nil
}
func (fakeChatService) Rename(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.RenameChatRequest) error {
	return nil
}
func (fakeChatService) SetVisibility(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, public bool) error {
	return nil
}
func (fakeChatService) Delete(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	return nil
}
func (fakeChatService) GetShared(ctx context.Context, viewerId uuid.UUID, chatId uuid.UUID) (*dto.SharedChatResponse, error) {
	return nil, serverutils.NewNotFound("Chat not found")
}
func (fakeChatService) OwnedChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error) {
	return &entity.Chat{Id: chatId, UserId: userId}, nil
}

type fakeStreamService struct {
	streamId string
	frames   []stream.Frame
}

func (f *fakeStreamService) Send(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.SendMessageRequest) (string, error) {
	return f.streamId, nil
}
func (f *fakeStreamService) Resume(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (string, error) {
	return f.streamId, nil
}
func (f *fakeStreamService) Subscribe(ctx context.Context, streamId string) (<-chan stream.Frame, error) {
	out := make(chan stream.Frame, len(f.frames))
	for _, frame := range f.frames {
		out <- frame
	}
	close(out)
	return out, nil
}

func signTestToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSendStreamsFramesAsSSE(t *testing.T) {
	userId := uuid.New()
	streamId := uuid.New().String()

	streamSvc := &fakeStreamService{
		streamId: streamId,
		frames: []stream.Frame{
			{Type: stream.FrameToken, Seq: 1, Content: "Hello"},
			{Type: stream.FrameToken, Seq: 2, Content: " world"},
			{Type: stream.FrameDone, Seq: 3},
		},
	}

	app := fiber.New()
	ctrl := NewChatController(fakeChatService{}, streamSvc)
	ctrl.RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest("POST", "/api/chat/v1/"+uuid.New().String()+"/stream",
		strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, userId))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, streamId, resp.Header.Get("X-Stream-Id"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"content":"Hello"`)
	assert.Contains(t, string(body), `"type":"done"`)
	assert.True(t, strings.HasPrefix(string(body), "data: "))
}

func TestResumeStreamsFramesAsSSE(t *testing.T) {
	userId := uuid.New()
	streamId := uuid.New().String()

	streamSvc := &fakeStreamService{
		streamId: streamId,
		frames: []stream.Frame{
			{Type: stream.FrameToken, Seq: 1, Content: "resumed"},
			{Type: stream.FrameDone, Seq: 2},
		},
	}

	app := fiber.New()
	ctrl := NewChatController(fakeChatService{}, streamSvc)
	ctrl.RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest("GET", "/api/chat/v1/"+uuid.New().String()+"/stream", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, userId))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"content":"resumed"`)
}

func TestStreamEndpointRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	ctrl := NewChatController(fakeChatService{}, &fakeStreamService{})
	ctrl.RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest("GET", "/api/chat/v1/"+uuid.New().String()+"/stream", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
