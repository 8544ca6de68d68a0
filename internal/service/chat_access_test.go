package service

import (
	"context"
	"errors"
	"testing"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memChatRepo applies the same specifications the real repository feeds
// into gorm, over an in-memory slice.
type memChatRepo struct {
	contract.ChatRepository
	chats []*entity.Chat
}

func (r *memChatRepo) matches(c *entity.Chat, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.PublicOnly:
			if !c.Public {
				return false
			}
		}
	}
	return true
}

func (r *memChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	for _, c := range r.chats {
		if r.matches(c, specs) {
			chat := *c
			return &chat, nil
		}
	}
	return nil, nil
}

type memMessageRepo struct {
	contract.MessageRepository
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return nil, nil
}

type memAttachmentRepo struct {
	contract.AttachmentRepository
}

func (r *memAttachmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	return nil, nil
}

type memUow struct {
	unitofwork.UnitOfWork
	chats *memChatRepo
}

func (u *memUow) ChatRepository() contract.ChatRepository { return u.chats }
func (u *memUow) MessageRepository() contract.MessageRepository {
	return &memMessageRepo{}
}
func (u *memUow) AttachmentRepository() contract.AttachmentRepository {
	return &memAttachmentRepo{}
}

type memUowFactory struct {
	uow *memUow
}

func (f *memUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newChatServiceWith(chats ...*entity.Chat) IChatService {
	factory := &memUowFactory{uow: &memUow{chats: &memChatRepo{chats: chats}}}
	return NewChatService(factory, nil, nil)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestOwnedChatForeignUserGetsNotFound(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	chat := &entity.Chat{Id: uuid.New(), UserId: owner, Name: "mine"}
	svc := newChatServiceWith(chat)

	// Foreign access and missing chats are the same outcome.
	_, err := svc.OwnedChat(context.Background(), stranger, chat.Id)
	assertNotFound(t, err)

	_, err = svc.OwnedChat(context.Background(), owner, uuid.New())
	assertNotFound(t, err)

	got, err := svc.OwnedChat(context.Background(), owner, chat.Id)
	require.NoError(t, err)
	assert.Equal(t, chat.Id, got.Id)
}

func TestGetSharedVisibilityPolicy(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	private := &entity.Chat{Id: uuid.New(), UserId: owner, Name: "private", Public: false}
	public := &entity.Chat{Id: uuid.New(), UserId: owner, Name: "public", Public: true}
	svc := newChatServiceWith(private, public)

	t.Run("anonymous reads public chat", func(t *testing.T) {
		res, err := svc.GetShared(context.Background(), uuid.Nil, public.Id)
		require.NoError(t, err)
		assert.False(t, res.Owner)
	})

	t.Run("anonymous cannot see private chat", func(t *testing.T) {
		_, err := svc.GetShared(context.Background(), uuid.Nil, private.Id)
		assertNotFound(t, err)
	})

	t.Run("stranger cannot see private chat", func(t *testing.T) {
		_, err := svc.GetShared(context.Background(), stranger, private.Id)
		assertNotFound(t, err)
	})

	t.Run("owner reads own private chat as owner", func(t *testing.T) {
		res, err := svc.GetShared(context.Background(), owner, private.Id)
		require.NoError(t, err)
		assert.True(t, res.Owner)
	})

	t.Run("missing chat is not found", func(t *testing.T) {
		_, err := svc.GetShared(context.Background(), uuid.Nil, uuid.New())
		assertNotFound(t, err)
	})
}
