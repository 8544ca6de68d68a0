package factory

import (
	"errors"
	"fmt"

	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/llm"
	"ai-chathub-be/pkg/llm/anthropic"
	"ai-chathub-be/pkg/llm/google"
	"ai-chathub-be/pkg/llm/openaicompat"
)

// Model type tags stored on a chat. They select the dispatch regime.
const (
	ModelTypeProvider   = "provider"
	ModelTypeOpenRouter = "openrouter"
	ModelTypeOllama     = "ollama"
)

// ProviderKind is the closed set of backends we can dial. Adding a vendor
// means adding a constant here and a case to every switch below; the
// compiler-checked exhaustive match replaces string-keyed fallthrough.
type ProviderKind int

const (
	KindOpenAI ProviderKind = iota
	KindGoogle
	KindAnthropic
	KindXAI
	KindGroq
	KindOpenRouter
	KindOllama
)

func (k ProviderKind) String() string {
	switch k {
	case KindOpenAI:
		return "openai"
	case KindGoogle:
		return "google"
	case KindAnthropic:
		return "anthropic"
	case KindXAI:
		return "xai"
	case KindGroq:
		return "groq"
	case KindOpenRouter:
		return "openrouter"
	case KindOllama:
		return "ollama"
	}
	return "unknown"
}

// KindForProviderId maps a catalog provider id to its kind.
func KindForProviderId(providerId string) (ProviderKind, bool) {
	switch providerId {
	case "openai":
		return KindOpenAI, true
	case "google":
		return KindGoogle, true
	case "anthropic":
		return KindAnthropic, true
	case "xai":
		return KindXAI, true
	case "groq":
		return KindGroq, true
	case "openrouter":
		return KindOpenRouter, true
	case "ollama":
		return KindOllama, true
	}
	return 0, false
}

// Resolution failures. The first two are distinct on purpose: "add a model"
// and "set a key" are different user actions.
var (
	ErrModelNotFound     = errors.New("model not found in provider catalog")
	ErrCredentialMissing = errors.New("no credential configured for provider")
	ErrInvalidModelType  = errors.New("unknown model type")
	ErrEndpointMissing   = errors.New("no endpoint configured for self-hosted model")
)

// CredentialSource yields the caller's decrypted secret for a provider id.
type CredentialSource interface {
	Secret(providerId string) (string, bool)
}

// CredentialMap is a CredentialSource over a plain map.
type CredentialMap map[string]string

func (m CredentialMap) Secret(providerId string) (string, bool) {
	secret, ok := m[providerId]
	return secret, ok
}

// Target is a fully resolved backend: which vendor kind to dial, the
// upstream model id, and the credential or endpoint to use.
type Target struct {
	Kind     ProviderKind
	Model    string
	APIKey   string
	Endpoint string // ollama only
}

// Resolve implements the dispatch contract: given a chat's stored model and
// model type, produce the backend target. Pure - no I/O, no side effects.
func Resolve(cat *catalog.Catalog, model, modelType, endpoint string, creds CredentialSource) (Target, error) {
	switch modelType {
	case ModelTypeProvider, "":
		providerId, ok := cat.ProviderForModel(model)
		if !ok {
			return Target{}, ErrModelNotFound
		}
		kind, ok := KindForProviderId(providerId)
		if !ok {
			return Target{}, fmt.Errorf("%w: %s", ErrModelNotFound, providerId)
		}
		secret, ok := creds.Secret(providerId)
		if !ok {
			return Target{}, fmt.Errorf("%w: %s", ErrCredentialMissing, providerId)
		}
		return Target{Kind: kind, Model: model, APIKey: secret}, nil

	case ModelTypeOpenRouter:
		secret, ok := creds.Secret("openrouter")
		if !ok {
			return Target{}, fmt.Errorf("%w: openrouter", ErrCredentialMissing)
		}
		// Model id passes through verbatim to OpenRouter.
		return Target{Kind: KindOpenRouter, Model: model, APIKey: secret}, nil

	case ModelTypeOllama:
		if endpoint == "" {
			return Target{}, ErrEndpointMissing
		}
		return Target{Kind: KindOllama, Model: model, Endpoint: endpoint}, nil
	}

	return Target{}, fmt.Errorf("%w: %s", ErrInvalidModelType, modelType)
}

// New constructs the provider client for a resolved target.
func New(t Target) (llm.StreamProvider, error) {
	switch t.Kind {
	case KindOpenAI:
		return openaicompat.New("https://api.openai.com/v1", t.APIKey, t.Model), nil
	case KindGroq:
		return openaicompat.New("https://api.groq.com/openai/v1", t.APIKey, t.Model), nil
	case KindXAI:
		return openaicompat.New("https://api.x.ai/v1", t.APIKey, t.Model), nil
	case KindOpenRouter:
		return openaicompat.New("https://openrouter.ai/api/v1", t.APIKey, t.Model), nil
	case KindOllama:
		return openaicompat.New(t.Endpoint+"/v1", "", t.Model), nil
	case KindGoogle:
		return google.New(t.APIKey, t.Model), nil
	case KindAnthropic:
		return anthropic.New(t.APIKey, t.Model), nil
	}
	return nil, fmt.Errorf("unsupported provider kind: %d", t.Kind)
}

// NewImageProvider constructs the images client for a resolved target.
// Only OpenAI-compatible image backends are supported.
func NewImageProvider(t Target) (*openaicompat.Provider, error) {
	switch t.Kind {
	case KindOpenAI:
		return openaicompat.New("https://api.openai.com/v1", t.APIKey, t.Model), nil
	case KindXAI:
		return openaicompat.New("https://api.x.ai/v1", t.APIKey, t.Model), nil
	case KindGoogle, KindAnthropic, KindGroq, KindOpenRouter, KindOllama:
		return nil, fmt.Errorf("provider %s does not support image generation", t.Kind)
	}
	return nil, fmt.Errorf("unsupported provider kind: %d", t.Kind)
}
