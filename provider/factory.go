// Package provider implements the gateways that normalize each upstream
// LLM vendor's streaming API to the model.Provider contract.
//
// Four vendors are supported: Groq, OpenRouter, and Fireworks share an
// OpenAI-compatible chat-completions core; Google Gemini has its own
// structured chat implementation. New creates a gateway from configuration,
// and Registry caches one gateway per vendor for the orchestrator's
// table-lookup dispatch.
package provider

import (
	"fmt"
	"sync"

	"nexus/model"
)

// Config holds the per-vendor settings a gateway is built from.
type Config struct {
	APIKey  string
	BaseURL string
}

// New creates the gateway for the given vendor tag.
//
// Returns an error if the vendor is unknown or its credential is missing;
// the missing-credential message is user-facing (the orchestrator surfaces
// it as a configuration error before any network call).
func New(id model.ProviderID, cfg Config) (model.Provider, error) {
	switch id {
	case model.ProviderGroq:
		return NewGroqProvider(cfg.BaseURL, cfg.APIKey)
	case model.ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey)
	case model.ProviderFireworks:
		return NewFireworksProvider(cfg.BaseURL, cfg.APIKey)
	case model.ProviderGoogle:
		return NewGoogleProvider(cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", id)
	}
}

// Registry lazily creates and caches one gateway per vendor.
type Registry struct {
	mu      sync.Mutex
	configs map[model.ProviderID]Config
	cache   map[model.ProviderID]model.Provider
}

// NewRegistry builds a registry from per-vendor configuration.
func NewRegistry(configs map[model.ProviderID]Config) *Registry {
	return &Registry{
		configs: configs,
		cache:   make(map[model.ProviderID]model.Provider),
	}
}

// Get returns the cached gateway for the vendor, creating it on first use.
func (r *Registry) Get(id model.ProviderID) (model.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.cache[id]; ok {
		return p, nil
	}

	p, err := New(id, r.configs[id])
	if err != nil {
		return nil, err
	}
	r.cache[id] = p
	return p, nil
}
