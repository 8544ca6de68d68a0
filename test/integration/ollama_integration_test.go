package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-chathub-be/pkg/llm"
	"ai-chathub-be/pkg/llm/openaicompat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the OpenAI-compatible client against a local Ollama host. Set
// OLLAMA_BASE_URL (and optionally OLLAMA_TEST_MODEL) to run.
func TestOllamaChatStream(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}

	modelName := os.Getenv("OLLAMA_TEST_MODEL")
	if modelName == "" {
		modelName = "gemma:2b"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Ollama accepts any api key on its OpenAI-compatible surface.
	provider := openaicompat.New(baseURL+"/v1", "ollama", modelName)

	history := []llm.Message{
		{Role: "user", Content: "Reply with the single word: pong"},
	}

	stream, err := provider.ChatStream(ctx, history, llm.WithTemperature(0))
	require.NoError(t, err)

	full, err := llm.Collect(stream)
	require.NoError(t, err)
	assert.NotEmpty(t, full)
	t.Logf("Ollama response: %s", full)
}

func TestOllamaChat(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}

	modelName := os.Getenv("OLLAMA_TEST_MODEL")
	if modelName == "" {
		modelName = "gemma:2b"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider := openaicompat.New(baseURL+"/v1", "ollama", modelName)

	full, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "What is 2+2? Answer with a single number."},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, full)
	t.Logf("Ollama response: %s", full)
}
