package service

import (
	"context"
	"errors"
	"time"

	"ai-chathub-be/internal/constant"
	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/events"
	"ai-chathub-be/pkg/llm"
	"ai-chathub-be/pkg/llm/factory"
	"ai-chathub-be/pkg/stream"

	"github.com/google/uuid"
)

// generationTimeout bounds a single upstream completion. Generous because
// generation keeps running after the client goes away.
const generationTimeout = 10 * time.Minute

// maxResponseTokens caps a single assistant reply across all backends.
const maxResponseTokens = 8192

type IStreamService interface {
	// Send persists the user message, resolves the backend, commits a
	// checkpoint, and starts detached generation. It returns the stream id
	// the caller subscribes to.
	Send(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.SendMessageRequest) (string, error)
	// Resume returns the stream id of the chat's in-flight generation, or
	// not-found when none is running.
	Resume(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (string, error)
	// Subscribe attaches to a stream's frame feed: buffered replay first,
	// then live frames until a terminal frame.
	Subscribe(ctx context.Context, streamId string) (<-chan stream.Frame, error)
}

type streamService struct {
	uowFactory        unitofwork.RepositoryFactory
	chatService       IChatService
	credentialService ICredentialService
	chatCatalog       *catalog.Catalog
	broker            *stream.Broker
	publisherService  IPublisherService
	logger            logger.ILogger
}

func NewStreamService(
	uowFactory unitofwork.RepositoryFactory,
	chatService IChatService,
	credentialService ICredentialService,
	chatCatalog *catalog.Catalog,
	broker *stream.Broker,
	publisherService IPublisherService,
	log logger.ILogger,
) IStreamService {
	return &streamService{
		uowFactory:        uowFactory,
		chatService:       chatService,
		credentialService: credentialService,
		chatCatalog:       chatCatalog,
		broker:            broker,
		publisherService:  publisherService,
		logger:            log,
	}
}

func (s *streamService) Send(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.SendMessageRequest) (string, error) {
	chat, err := s.chatService.OwnedChat(ctx, userId, chatId)
	if err != nil {
		return "", err
	}

	// Resolve the backend before committing anything, so configuration
	// mistakes come back synchronously as user-actionable errors.
	creds, err := s.credentialService.UnsealedFor(ctx, userId)
	if err != nil {
		return "", err
	}
	target, err := factory.Resolve(s.chatCatalog, chat.Model, chat.ModelType, chat.Endpoint, creds)
	if err != nil {
		return "", mapResolveError(err)
	}
	provider, err := factory.New(target)
	if err != nil {
		return "", err
	}

	userMessage := &entity.Message{
		Id:           uuid.New(),
		ChatId:       chat.Id,
		UserId:       userId,
		Role:         constant.MessageRoleUser,
		Content:      req.Content,
		AttachmentId: req.AttachmentId,
		CreatedAt:    time.Now(),
	}
	streamId := uuid.NewString()
	checkpoint := &entity.StreamCheckpoint{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		StreamId:  streamId,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return "", err
	}
	if req.AttachmentId != nil {
		if err := s.linkAttachment(ctx, uow, userId, chat.Id, *req.AttachmentId, userMessage.Id); err != nil {
			return "", err
		}
	}
	// The checkpoint is the commit point for resumability. If this write
	// fails the whole send fails.
	if err := uow.StreamCheckpointRepository().Create(ctx, checkpoint); err != nil {
		return "", err
	}
	if err := uow.Commit(); err != nil {
		return "", err
	}

	history, err := s.buildHistory(ctx, chat.Id)
	if err != nil {
		return "", err
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeStreamStarted, map[string]interface{}{
		"chat_id":   chat.Id.String(),
		"user_id":   userId.String(),
		"stream_id": streamId,
	}))

	// Generation is detached from the request: it runs to completion even
	// if every subscriber disconnects.
	go s.generate(chat, userId, streamId, provider, history)

	return streamId, nil
}

func (s *streamService) Resume(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (string, error) {
	if _, err := s.chatService.OwnedChat(ctx, userId, chatId); err != nil {
		return "", err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	checkpoint, err := uow.StreamCheckpointRepository().FindOne(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return "", err
	}
	if checkpoint == nil {
		// No stream in flight. A normal outcome, not a fault.
		return "", serverutils.NewNotFound("No active stream for this chat")
	}

	exists, err := s.broker.Exists(ctx, checkpoint.StreamId)
	if err != nil {
		return "", err
	}
	if !exists {
		// Stale checkpoint whose buffer already expired; the janitor will
		// collect the row.
		return "", serverutils.NewNotFound("No active stream for this chat")
	}

	return checkpoint.StreamId, nil
}

func (s *streamService) Subscribe(ctx context.Context, streamId string) (<-chan stream.Frame, error) {
	return s.broker.Subscribe(ctx, streamId)
}

func (s *streamService) generate(chat *entity.Chat, userId uuid.UUID, streamId string, provider llm.StreamProvider, history []llm.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	writer := s.broker.NewWriter(streamId)

	upstream, err := provider.ChatStream(ctx, history, llm.WithMaxTokens(maxResponseTokens))
	if err != nil {
		s.fail(ctx, chat, userId, streamId, writer, err)
		return
	}
	defer upstream.Close()

	full, err := llm.Collect(tee{upstream: upstream, ctx: ctx, writer: writer})
	if err != nil {
		s.fail(ctx, chat, userId, streamId, writer, err)
		return
	}

	if err := s.finish(ctx, chat, userId, streamId, full); err != nil {
		s.fail(ctx, chat, userId, streamId, writer, err)
		return
	}

	if err := writer.Done(ctx); err != nil {
		s.logger.Error("Stream", "Failed to publish done frame", map[string]interface{}{
			"stream_id": streamId,
			"error":     err.Error(),
		})
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeStreamCompleted, map[string]interface{}{
		"chat_id":   chat.Id.String(),
		"user_id":   userId.String(),
		"stream_id": streamId,
	}))
}

// tee forwards each received token to the broker while Collect accumulates
// the full text.
type tee struct {
	upstream llm.Stream
	ctx      context.Context
	writer   *stream.Writer
}

func (t tee) Recv() (string, error) {
	token, err := t.upstream.Recv()
	if err != nil {
		return "", err
	}
	if err := t.writer.Token(t.ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

func (t tee) Close() error {
	return t.upstream.Close()
}

// finish persists the assistant message and clears the checkpoint in one
// transaction, so a crash can never leave the message without also leaving
// the (resumable) checkpoint.
func (s *streamService) finish(ctx context.Context, chat *entity.Chat, userId uuid.UUID, streamId, content string) error {
	assistant := &entity.Message{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		UserId:    userId,
		Role:      constant.MessageRoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, assistant); err != nil {
		return err
	}
	if err := uow.StreamCheckpointRepository().DeleteByStreamId(ctx, streamId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeMessagePersisted, map[string]interface{}{
		"chat_id":    chat.Id.String(),
		"message_id": assistant.Id.String(),
		"role":       assistant.Role,
	}))
	return nil
}

func (s *streamService) fail(_ context.Context, chat *entity.Chat, userId uuid.UUID, streamId string, writer *stream.Writer, cause error) {
	// Cleanup must not be cut short by the generation context expiring.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Error("Stream", "Generation failed", map[string]interface{}{
		"chat_id":   chat.Id.String(),
		"stream_id": streamId,
		"error":     cause.Error(),
	})

	// The server signals failure explicitly over the stream channel; no
	// subscriber has to infer it from silence.
	if err := writer.Fail(ctx, "The model failed to respond. Retry your last message."); err != nil {
		s.logger.Error("Stream", "Failed to publish error frame", map[string]interface{}{
			"stream_id": streamId,
			"error":     err.Error(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.StreamCheckpointRepository().DeleteByStreamId(ctx, streamId); err != nil {
		s.logger.Error("Stream", "Failed to delete checkpoint after failure", map[string]interface{}{
			"stream_id": streamId,
			"error":     err.Error(),
		})
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeStreamFailed, map[string]interface{}{
		"chat_id":   chat.Id.String(),
		"user_id":   userId.String(),
		"stream_id": streamId,
		"error":     cause.Error(),
	}))
}

func (s *streamService) buildHistory(ctx context.Context, chatId uuid.UUID) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	attachments, err := uow.AttachmentRepository().FindAll(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, err
	}
	urlById := make(map[uuid.UUID]string, len(attachments))
	for _, a := range attachments {
		urlById[a.Id] = a.URL
	}

	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		msg := llm.Message{
			Role:    llm.NormalizeRole(m.Role),
			Content: m.Content,
		}
		if m.AttachmentId != nil {
			msg.AttachmentURL = urlById[*m.AttachmentId]
		}
		history = append(history, msg)
	}
	return history, nil
}

func (s *streamService) linkAttachment(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId, attachmentId, messageId uuid.UUID) error {
	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.ByID{ID: attachmentId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if attachment == nil {
		return serverutils.NewNotFound("Attachment not found")
	}
	attachment.ChatId = chatId
	attachment.MessageId = &messageId
	return uow.AttachmentRepository().Update(ctx, attachment)
}

// mapResolveError turns dispatch failures into the two distinct
// user-actionable conditions: add a model vs set a key.
func mapResolveError(err error) error {
	switch {
	case errors.Is(err, factory.ErrModelNotFound):
		return serverutils.NewNotFound("Model not found. Add it to your providers first.")
	case errors.Is(err, factory.ErrCredentialMissing):
		return serverutils.NewUnprocessable("No credential configured for this provider. Set an API key first.")
	case errors.Is(err, factory.ErrEndpointMissing), errors.Is(err, factory.ErrInvalidModelType):
		return serverutils.NewBadRequest(err.Error())
	}
	return err
}
