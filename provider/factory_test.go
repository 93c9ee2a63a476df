package provider

import (
	"strings"
	"testing"

	"nexus/model"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		id      model.ProviderID
		cfg     Config
		wantErr string
	}{
		{"groq with key", model.ProviderGroq, Config{APIKey: "test-key"}, ""},
		{"groq missing key", model.ProviderGroq, Config{}, "Groq API key not configured"},
		{"openrouter with key", model.ProviderOpenRouter, Config{APIKey: "test-key"}, ""},
		{"openrouter missing key", model.ProviderOpenRouter, Config{}, "OpenRouter API key not configured"},
		{"fireworks with key", model.ProviderFireworks, Config{APIKey: "test-key"}, ""},
		{"fireworks missing key", model.ProviderFireworks, Config{}, "Fireworks API key not configured"},
		{"google with key", model.ProviderGoogle, Config{APIKey: "test-key"}, ""},
		{"google missing key", model.ProviderGoogle, Config{}, "Google AI API key not configured"},
		{"custom base url", model.ProviderGroq, Config{APIKey: "test-key", BaseURL: "http://localhost:8080/v1"}, ""},
		{"unknown vendor", model.ProviderID("acme"), Config{APIKey: "test-key"}, "unknown provider: acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.id, tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("New(%s) failed: %v", tt.id, err)
				}
				if p == nil {
					t.Fatal("expected a provider")
				}
				return
			}
			if err == nil {
				t.Fatalf("New(%s) succeeded, want error %q", tt.id, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegistryCachesGateways(t *testing.T) {
	r := NewRegistry(map[model.ProviderID]Config{
		model.ProviderGroq: {APIKey: "test-key"},
	})

	first, err := r.Get(model.ProviderGroq)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := r.Get(model.ProviderGroq)
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if first != second {
		t.Error("registry should reuse the constructed gateway")
	}
}

func TestRegistryPropagatesConstructionError(t *testing.T) {
	r := NewRegistry(map[model.ProviderID]Config{})

	if _, err := r.Get(model.ProviderGroq); err == nil {
		t.Error("expected an error for a vendor without credentials")
	}
	if _, err := r.Get(model.ProviderID("acme")); err == nil {
		t.Error("expected an error for an unknown vendor")
	}
}
