package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed models.json image_models.json
var catalogFS embed.FS

// Model is a single catalog entry.
type Model struct {
	Id                  string `json:"id"`
	Name                string `json:"name"`
	SupportsAttachments bool   `json:"supports_attachments"`
	Free                bool   `json:"free"`
	Experimental        bool   `json:"experimental"`
}

// Provider groups the models of one upstream vendor.
type Provider struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Models      []Model `json:"models"`
}

// Catalog is an immutable, pre-flattened view of a provider/model JSON file.
// It is built once at process start; lookups after that are map reads.
type Catalog struct {
	providers        map[string]Provider
	providerByModel  map[string]string // model id -> provider id
	modelById        map[string]Model
	modelIdByName    map[string]string // display name -> model id
	orderedProviders []string
}

func load(file string) (*Catalog, error) {
	raw, err := catalogFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", file, err)
	}

	var providers map[string]Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", file, err)
	}

	c := &Catalog{
		providers:       providers,
		providerByModel: make(map[string]string),
		modelById:       make(map[string]Model),
		modelIdByName:   make(map[string]string),
	}
	for providerId, p := range providers {
		c.orderedProviders = append(c.orderedProviders, providerId)
		for _, m := range p.Models {
			c.providerByModel[m.Id] = providerId
			c.modelById[m.Id] = m
			c.modelIdByName[m.Name] = m.Id
		}
	}
	sort.Strings(c.orderedProviders)
	return c, nil
}

// MustLoadChat loads the chat model catalog. The files are embedded, so a
// failure here is a build defect and panics early.
func MustLoadChat() *Catalog {
	c, err := load("models.json")
	if err != nil {
		panic(err)
	}
	return c
}

// MustLoadImage loads the image model catalog.
func MustLoadImage() *Catalog {
	c, err := load("image_models.json")
	if err != nil {
		panic(err)
	}
	return c
}

// ProviderForModel resolves a model id to its owning provider id.
func (c *Catalog) ProviderForModel(modelId string) (string, bool) {
	providerId, ok := c.providerByModel[modelId]
	return providerId, ok
}

// Model returns the catalog entry for a model id.
func (c *Catalog) Model(modelId string) (Model, bool) {
	m, ok := c.modelById[modelId]
	return m, ok
}

// ResolveModelName maps a display name to a model id. Unknown names are
// returned untouched so callers can accept raw ids as well.
func (c *Catalog) ResolveModelName(name string) string {
	if id, ok := c.modelIdByName[name]; ok {
		return id
	}
	return name
}

// Provider returns the full provider entry for a provider id.
func (c *Catalog) Provider(providerId string) (Provider, bool) {
	p, ok := c.providers[providerId]
	return p, ok
}

// ProviderIds lists the provider ids in stable order.
func (c *Catalog) ProviderIds() []string {
	return c.orderedProviders
}
