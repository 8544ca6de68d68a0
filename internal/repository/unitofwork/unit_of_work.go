package unitofwork

import (
	"context"

	"ai-chathub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
	StreamCheckpointRepository() contract.StreamCheckpointRepository
	CredentialRepository() contract.CredentialRepository
	CustomProviderRepository() contract.CustomProviderRepository
	AttachmentRepository() contract.AttachmentRepository
	GeneratedFileRepository() contract.GeneratedFileRepository
	SystemLogRepository() contract.SystemLogRepository
}
