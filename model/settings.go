package model

// AppSettings holds user-level configuration persisted with the rest of the
// store state.
type AppSettings struct {
	Theme           string `json:"theme"`
	DefaultModel    string `json:"defaultModel"`
	DefaultPersona  string `json:"defaultPersona"`
	StreamResponses bool   `json:"streamResponses"`
	EnableVoice     bool   `json:"enableVoice"`
	EnableWebSearch bool   `json:"enableWebSearch"`
	EnableArtifacts bool   `json:"enableArtifacts"`
	FontSize        string `json:"fontSize"`
	SendWithEnter   bool   `json:"sendWithEnter"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:           "dark",
		DefaultModel:    Models[0].ID,
		DefaultPersona:  "default",
		StreamResponses: true,
		EnableVoice:     true,
		EnableWebSearch: true,
		EnableArtifacts: true,
		FontSize:        "medium",
		SendWithEnter:   true,
	}
}
