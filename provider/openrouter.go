package provider

import "nexus/model"

const openRouterDefaultBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates the gateway for OpenRouter's
// OpenAI-compatible API. Model ids keep their vendor prefix
// (e.g. "meta-llama/llama-3.3-70b-instruct:free") on the wire.
func NewOpenRouterProvider(baseURL, apiKey string) (model.Provider, error) {
	if baseURL == "" {
		baseURL = openRouterDefaultBaseURL
	}
	return newOpenAICompatProvider("OpenRouter", baseURL, apiKey)
}
