package provider

import "testing"

func TestResolveGeminiModel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"gemini-2.0-flash", "gemini-2.0-flash-exp"},
		{"gemini-1.5-pro", "gemini-1.5-pro"},
	}

	for _, tt := range tests {
		if got := resolveGeminiModel(tt.id); got != tt.want {
			t.Errorf("resolveGeminiModel(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
