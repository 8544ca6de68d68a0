package openaicompat

import (
	"encoding/json"
	"testing"

	"ai-chathub-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestBuildRequestAppliesMaxTokens(t *testing.T) {
	p := New("http://localhost:1234/v1", "key", "gpt-4.1")

	body, err := p.buildRequest([]llm.Message{{Role: "user", Content: "hi"}}, true, llm.WithMaxTokens(512))
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "gpt-4.1", payload["model"])
	assert.Equal(t, float64(512), payload["max_tokens"])
	assert.Equal(t, true, payload["stream"])
}

func TestBuildRequestOmitsMaxTokensByDefault(t *testing.T) {
	p := New("http://localhost:1234/v1", "key", "gpt-4.1")

	body, err := p.buildRequest([]llm.Message{{Role: "user", Content: "hi"}}, false)
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &payload))
	_, present := payload["max_tokens"]
	assert.False(t, present)
}
