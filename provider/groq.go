package provider

import "nexus/model"

const groqDefaultBaseURL = "https://api.groq.com/openai/v1"

// NewGroqProvider creates the gateway for Groq's OpenAI-compatible API.
func NewGroqProvider(baseURL, apiKey string) (model.Provider, error) {
	if baseURL == "" {
		baseURL = groqDefaultBaseURL
	}
	return newOpenAICompatProvider("Groq", baseURL, apiKey)
}
