package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderForModel(t *testing.T) {
	c := MustLoadChat()

	tests := []struct {
		name         string
		modelId      string
		wantProvider string
		wantFound    bool
	}{
		{name: "openai model", modelId: "gpt-4.1", wantProvider: "openai", wantFound: true},
		{name: "google model", modelId: "gemini-2.5-flash", wantProvider: "google", wantFound: true},
		{name: "groq model", modelId: "llama-3.3-70b-versatile", wantProvider: "groq", wantFound: true},
		{name: "unknown model", modelId: "definitely-not-a-model", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerId, ok := c.ProviderForModel(tt.modelId)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.wantProvider, providerId)
			}
		})
	}
}

func TestResolveModelName(t *testing.T) {
	c := MustLoadChat()

	// Display name maps to the id.
	assert.Equal(t, "gpt-4.1", c.ResolveModelName("GPT-4.1"))

	// Raw ids and unknown names pass through unchanged.
	assert.Equal(t, "gpt-4.1", c.ResolveModelName("gpt-4.1"))
	assert.Equal(t, "my-custom-model", c.ResolveModelName("my-custom-model"))
}

func TestCapabilityFlags(t *testing.T) {
	c := MustLoadChat()

	m, ok := c.Model("gemini-2.5-flash")
	assert.True(t, ok)
	assert.True(t, m.Free)
	assert.True(t, m.SupportsAttachments)

	m, ok = c.Model("grok-3")
	assert.True(t, ok)
	assert.False(t, m.Free)
}

func TestImageCatalog(t *testing.T) {
	c := MustLoadImage()

	providerId, ok := c.ProviderForModel("gpt-image-1")
	assert.True(t, ok)
	assert.Equal(t, "openai", providerId)

	providerId, ok = c.ProviderForModel("grok-2-image")
	assert.True(t, ok)
	assert.Equal(t, "xai", providerId)
}
