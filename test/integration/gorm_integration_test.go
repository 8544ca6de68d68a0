package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-chathub-be/internal/constant"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatRepository())
	assert.NotNil(t, uow.StreamCheckpointRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Chat Repository", func(t *testing.T) {
		count, err := uow.ChatRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chat count: %d", count)
	})

	t.Run("Check Transactional Chat Creation", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		user := &entity.User{
			Id:       userId,
			Subject:  "test-integration-" + uuid.New().String(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test",
		}

		txUow := uowFactory.NewUnitOfWork(ctx)
		err := txUow.Begin(ctx)
		assert.NoError(t, err)
		defer txUow.Rollback()

		err = txUow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		chat := &entity.Chat{
			Id:        uuid.New(),
			UserId:    userId,
			Name:      constant.DefaultChatName,
			Model:     "gpt-4o-mini",
			ModelType: "provider",
		}
		err = txUow.ChatRepository().Create(ctx, chat)
		assert.NoError(t, err)

		message := &entity.Message{
			Id:      uuid.New(),
			ChatId:  chat.Id,
			UserId:  userId,
			Role:    constant.MessageRoleUser,
			Content: "hello",
		}
		err = txUow.MessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		// Visible inside the transaction
		found, err := txUow.ChatRepository().FindOne(ctx,
			specification.ByID{ID: chat.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		assert.NoError(t, err)
		assert.NotNil(t, found)

		// Another user's scope never sees the chat; ownership is part of
		// the query, so foreign and missing are the same nil result.
		foreign, err := txUow.ChatRepository().FindOne(ctx,
			specification.ByID{ID: chat.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Nil(t, foreign)

		// Rolled back by the deferred Rollback; nothing persists.
	})
}
