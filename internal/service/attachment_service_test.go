package service

import (
	"context"
	"strings"
	"testing"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	keys []string
}

func (s *captureStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/uploads/" + key, nil
}

type fakeAttachmentRepo struct {
	contract.AttachmentRepository
	created []*entity.Attachment
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *entity.Attachment) error {
	r.created = append(r.created, attachment)
	return nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	attachments *fakeAttachmentRepo
}

func (u *fakeUow) AttachmentRepository() contract.AttachmentRepository {
	return u.attachments
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestUploadKeyIsRelativeToStorePrefix(t *testing.T) {
	store := &captureStore{}
	repo := &fakeAttachmentRepo{}
	svc := NewAttachmentService(&fakeUowFactory{uow: &fakeUow{attachments: repo}}, store)
	userId := uuid.New()

	res, err := svc.Upload(context.Background(), userId, "report.pdf", "application/pdf", []byte("pdf"))
	require.NoError(t, err)
	require.Len(t, store.keys, 1)

	// The store prepends its upload directory; a key starting with it would
	// double the prefix in the bucket.
	key := store.keys[0]
	assert.False(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasPrefix(key, userId.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "_report.pdf"))

	require.Len(t, repo.created, 1)
	assert.Equal(t, res.URL, repo.created[0].URL)
}
