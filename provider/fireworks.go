package provider

import "nexus/model"

const fireworksDefaultBaseURL = "https://api.fireworks.ai/inference/v1"

// NewFireworksProvider creates the gateway for Fireworks' OpenAI-compatible
// inference API.
func NewFireworksProvider(baseURL, apiKey string) (model.Provider, error) {
	if baseURL == "" {
		baseURL = fireworksDefaultBaseURL
	}
	return newOpenAICompatProvider("Fireworks", baseURL, apiKey)
}
