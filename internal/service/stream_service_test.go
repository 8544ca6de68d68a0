package service

import (
	"errors"
	"fmt"
	"testing"

	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/pkg/llm/factory"

	"github.com/stretchr/testify/assert"
)

func TestMapResolveError(t *testing.T) {
	t.Run("unknown model maps to not found", func(t *testing.T) {
		mapped := mapResolveError(factory.ErrModelNotFound)

		var appErr *serverutils.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("missing credential maps to unprocessable", func(t *testing.T) {
		mapped := mapResolveError(fmt.Errorf("resolve openai: %w", factory.ErrCredentialMissing))

		var appErr *serverutils.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, 422, appErr.Code)
	})

	t.Run("missing endpoint maps to bad request", func(t *testing.T) {
		mapped := mapResolveError(factory.ErrEndpointMissing)

		var appErr *serverutils.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("invalid model type maps to bad request", func(t *testing.T) {
		mapped := mapResolveError(factory.ErrInvalidModelType)

		var appErr *serverutils.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("unrelated errors pass through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Equal(t, cause, mapResolveError(cause))
	})
}
