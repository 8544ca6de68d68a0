package service

import (
	"context"
	"strings"
	"time"

	"ai-chathub-be/internal/constant"
	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/events"
	"ai-chathub-be/pkg/llm/factory"

	"github.com/google/uuid"
)

type IChatService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartChatRequest) (*dto.StartChatResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.RenameChatRequest) error
	SetVisibility(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, public bool) error
	Delete(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error
	// GetShared is the public share read. viewerId is uuid.Nil for an
	// anonymous caller.
	GetShared(ctx context.Context, viewerId uuid.UUID, chatId uuid.UUID) (*dto.SharedChatResponse, error)
	// OwnedChat loads a chat and enforces ownership; other services use it
	// as their access gate.
	OwnedChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	chatCatalog      *catalog.Catalog
	publisherService IPublisherService
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	chatCatalog *catalog.Catalog,
	publisherService IPublisherService,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		chatCatalog:      chatCatalog,
		publisherService: publisherService,
	}
}

// Start creates a chat and its first user message. A display-name model
// reference is aliased to the catalog id; unknown names pass through and
// fail later at dispatch with a model-not-found.
func (s *chatService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartChatRequest) (*dto.StartChatResponse, error) {
	model := req.Model
	modelType := req.ModelType
	if modelType == "" {
		modelType = factory.ModelTypeProvider
	}
	if modelType == factory.ModelTypeProvider {
		model = s.chatCatalog.ResolveModelName(model)
	}
	if modelType == factory.ModelTypeOllama && req.Endpoint == "" {
		return nil, serverutils.NewBadRequest("Endpoint is required for ollama chats")
	}

	chat := &entity.Chat{
		Id:        uuid.New(),
		UserId:    userId,
		Model:     model,
		ModelType: modelType,
		Endpoint:  req.Endpoint,
		Name:      nameFromContent(req.Content),
		CreatedAt: time.Now(),
	}
	firstMessage := &entity.Message{
		Id:           uuid.New(),
		ChatId:       chat.Id,
		UserId:       userId,
		Role:         constant.MessageRoleUser,
		Content:      req.Content,
		AttachmentId: req.AttachmentId,
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, firstMessage); err != nil {
		return nil, err
	}
	if req.AttachmentId != nil {
		if err := s.linkAttachment(ctx, uow, userId, chat.Id, *req.AttachmentId, firstMessage.Id); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeChatCreated, map[string]interface{}{
		"chat_id": chat.Id.String(),
		"user_id": userId.String(),
		"model":   chat.Model,
	}))

	return &dto.StartChatResponse{Id: chat.Id, Name: chat.Name}, nil
}

func (s *chatService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSummaryResponse, 0, len(chats))
	for _, chat := range chats {
		result = append(result, &dto.ChatSummaryResponse{
			Id:        chat.Id,
			Name:      chat.Name,
			Model:     chat.Model,
			ModelType: chat.ModelType,
			Public:    chat.Public,
			CreatedAt: chat.CreatedAt,
		})
	}
	return result, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
	chat, err := s.OwnedChat(ctx, userId, chatId)
	if err != nil {
		return nil, err
	}
	return s.historyOf(ctx, chat.Id)
}

func (s *chatService) Rename(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.RenameChatRequest) error {
	chat, err := s.OwnedChat(ctx, userId, chatId)
	if err != nil {
		return err
	}
	chat.Name = req.Name
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatRepository().Update(ctx, chat)
}

func (s *chatService) SetVisibility(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, public bool) error {
	chat, err := s.OwnedChat(ctx, userId, chatId)
	if err != nil {
		return err
	}
	chat.Public = public
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatRepository().Update(ctx, chat)
}

// Delete removes the chat and everything hanging off it in one transaction.
func (s *chatService) Delete(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	chat, err := s.OwnedChat(ctx, userId, chatId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.StreamCheckpointRepository().DeleteByChatId(ctx, chat.Id); err != nil {
		return err
	}
	if err := uow.AttachmentRepository().DeleteByChatId(ctx, chat.Id); err != nil {
		return err
	}
	if err := uow.MessageRepository().DeleteByChatId(ctx, chat.Id); err != nil {
		return err
	}
	if err := uow.ChatRepository().Delete(ctx, chat.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeChatDeleted, map[string]interface{}{
		"chat_id": chat.Id.String(),
		"user_id": userId.String(),
	}))
	return nil
}

func (s *chatService) GetShared(ctx context.Context, viewerId uuid.UUID, chatId uuid.UUID) (*dto.SharedChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The owner can always read their own chat through the share link;
	// everyone else only sees public ones. Private chats stay
	// indistinguishable from missing ones.
	var chat *entity.Chat
	var err error
	if viewerId != uuid.Nil {
		chat, err = uow.ChatRepository().FindOne(ctx,
			specification.ByID{ID: chatId},
			specification.UserOwnedBy{UserID: viewerId},
		)
		if err != nil {
			return nil, err
		}
	}
	owner := chat != nil
	if chat == nil {
		chat, err = uow.ChatRepository().FindOne(ctx,
			specification.ByID{ID: chatId},
			specification.PublicOnly{},
		)
		if err != nil {
			return nil, err
		}
	}
	if chat == nil {
		return nil, serverutils.NewNotFound("Chat not found")
	}

	messages, err := s.historyOf(ctx, chat.Id)
	if err != nil {
		return nil, err
	}

	resp := &dto.SharedChatResponse{
		Id:       chat.Id,
		Name:     chat.Name,
		Owner:    owner,
		Messages: make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, *m)
	}
	return resp, nil
}

func (s *chatService) OwnedChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewNotFound("Chat not found")
	}
	return chat, nil
}

func (s *chatService) historyOf(ctx context.Context, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
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

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res := &dto.MessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
		if m.AttachmentId != nil {
			if url, ok := urlById[*m.AttachmentId]; ok {
				res.AttachmentURL = &url
			}
		}
		result = append(result, res)
	}
	return result, nil
}

func (s *chatService) linkAttachment(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId, attachmentId, messageId uuid.UUID) error {
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

// nameFromContent derives the initial chat name from the first user message.
func nameFromContent(content string) string {
	name := strings.TrimSpace(content)
	if name == "" {
		return constant.DefaultChatName
	}
	if idx := strings.IndexByte(name, '\n'); idx > 0 {
		name = name[:idx]
	}
	runes := []rune(name)
	if len(runes) > constant.ChatNameMaxLen {
		name = string(runes[:constant.ChatNameMaxLen])
	}
	return name
}
