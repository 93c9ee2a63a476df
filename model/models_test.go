package model

import "testing"

func TestModelByID(t *testing.T) {
	m, ok := ModelByID("llama-3.3-70b-versatile")
	if !ok {
		t.Fatal("catalog model not found")
	}
	if m.Provider != ProviderGroq {
		t.Errorf("provider = %q, want %q", m.Provider, ProviderGroq)
	}

	if _, ok := ModelByID("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestAvailableModelsExcludesSuspended(t *testing.T) {
	for _, m := range AvailableModels() {
		if !m.IsAvailable {
			t.Errorf("model %s is listed but unavailable", m.ID)
		}
	}
	if len(AvailableModels()) >= len(Models) {
		t.Error("catalog should contain at least one suspended model")
	}
}

func TestModelsByProvider(t *testing.T) {
	for _, m := range ModelsByProvider(ProviderGoogle) {
		if m.Provider != ProviderGoogle {
			t.Errorf("model %s tagged %q", m.ID, m.Provider)
		}
	}
	if len(ModelsByProvider(ProviderGoogle)) == 0 {
		t.Error("expected google models in the catalog")
	}
	if len(ModelsByProvider(ProviderID("acme"))) != 0 {
		t.Error("unknown vendor should serve no models")
	}
}

func TestLastUserMessage(t *testing.T) {
	conv := Conversation{Messages: []Message{
		{ID: "1", Role: RoleUser, Content: "first"},
		{ID: "2", Role: RoleAssistant, Content: "reply"},
		{ID: "3", Role: RoleUser, Content: "second"},
		{ID: "4", Role: RoleAssistant, Content: "reply"},
	}}

	last, ok := conv.LastUserMessage()
	if !ok || last.ID != "3" {
		t.Errorf("got %+v, want message 3", last)
	}

	empty := Conversation{}
	if _, ok := empty.LastUserMessage(); ok {
		t.Error("empty conversation should have no user message")
	}
}

func TestDefaultPersonas(t *testing.T) {
	personas := DefaultPersonas()
	if len(personas) == 0 {
		t.Fatal("expected built-in personas")
	}
	seen := map[string]bool{}
	for _, p := range personas {
		if p.ID == "" || p.SystemPrompt == "" {
			t.Errorf("persona %+v missing id or prompt", p)
		}
		if !p.IsDefault {
			t.Errorf("persona %s should be marked default", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("duplicate persona id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if !seen["default"] {
		t.Error(`expected a persona with id "default"`)
	}
}
