package factory

import (
	"testing"

	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/llm/anthropic"
	"ai-chathub-be/pkg/llm/google"
	"ai-chathub-be/pkg/llm/openaicompat"

	"github.com/stretchr/testify/assert"
)

func TestResolveProviderRegime(t *testing.T) {
	cat := catalog.MustLoadChat()
	creds := CredentialMap{"openai": "sk-test", "google": "g-test"}

	tests := []struct {
		name     string
		model    string
		wantKind ProviderKind
		wantKey  string
		wantErr  error
	}{
		{name: "openai model with credential", model: "gpt-4.1", wantKind: KindOpenAI, wantKey: "sk-test"},
		{name: "google model with credential", model: "gemini-2.5-flash", wantKind: KindGoogle, wantKey: "g-test"},
		{name: "known model without credential", model: "grok-3", wantErr: ErrCredentialMissing},
		{name: "unknown model", model: "no-such-model", wantErr: ErrModelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := Resolve(cat, tt.model, ModelTypeProvider, "", creds)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKind, target.Kind)
			assert.Equal(t, tt.wantKey, target.APIKey)
			assert.Equal(t, tt.model, target.Model)
		})
	}
}

func TestResolveEmptyModelTypeDefaultsToProvider(t *testing.T) {
	cat := catalog.MustLoadChat()

	target, err := Resolve(cat, "gpt-4.1", "", "", CredentialMap{"openai": "sk-test"})
	assert.NoError(t, err)
	assert.Equal(t, KindOpenAI, target.Kind)
}

func TestResolveOpenRouterRegime(t *testing.T) {
	cat := catalog.MustLoadChat()

	// Model id passes through verbatim, even when absent from the catalog.
	target, err := Resolve(cat, "mistralai/mistral-large", ModelTypeOpenRouter, "", CredentialMap{"openrouter": "or-test"})
	assert.NoError(t, err)
	assert.Equal(t, KindOpenRouter, target.Kind)
	assert.Equal(t, "mistralai/mistral-large", target.Model)
	assert.Equal(t, "or-test", target.APIKey)

	_, err = Resolve(cat, "mistralai/mistral-large", ModelTypeOpenRouter, "", CredentialMap{})
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestResolveOllamaRegime(t *testing.T) {
	cat := catalog.MustLoadChat()

	// No credential lookup; endpoint and model are structured fields.
	target, err := Resolve(cat, "llama3", ModelTypeOllama, "http://localhost:11434", CredentialMap{})
	assert.NoError(t, err)
	assert.Equal(t, KindOllama, target.Kind)
	assert.Equal(t, "http://localhost:11434", target.Endpoint)
	assert.Empty(t, target.APIKey)

	_, err = Resolve(cat, "llama3", ModelTypeOllama, "", CredentialMap{})
	assert.ErrorIs(t, err, ErrEndpointMissing)
}

func TestResolveInvalidModelType(t *testing.T) {
	cat := catalog.MustLoadChat()

	_, err := Resolve(cat, "gpt-4.1", "bogus", "", CredentialMap{"openai": "sk-test"})
	assert.ErrorIs(t, err, ErrInvalidModelType)
}

func TestNewConstructsEveryKind(t *testing.T) {
	tests := []struct {
		kind     ProviderKind
		wantType interface{}
	}{
		{KindOpenAI, &openaicompat.Provider{}},
		{KindGroq, &openaicompat.Provider{}},
		{KindXAI, &openaicompat.Provider{}},
		{KindOpenRouter, &openaicompat.Provider{}},
		{KindOllama, &openaicompat.Provider{}},
		{KindGoogle, &google.Provider{}},
		{KindAnthropic, &anthropic.Provider{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			provider, err := New(Target{Kind: tt.kind, Model: "m", APIKey: "k", Endpoint: "http://localhost:11434"})
			assert.NoError(t, err)
			assert.IsType(t, tt.wantType, provider)
		})
	}
}

func TestNewImageProvider(t *testing.T) {
	_, err := NewImageProvider(Target{Kind: KindOpenAI, Model: "gpt-image-1", APIKey: "k"})
	assert.NoError(t, err)

	_, err = NewImageProvider(Target{Kind: KindGroq, Model: "m", APIKey: "k"})
	assert.Error(t, err)
}
