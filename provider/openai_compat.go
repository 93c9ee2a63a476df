package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"nexus/model"
)

// maxCompletionTokens caps the response length for the chat-completions
// vendors, matching the upstream request shape this system always used.
const maxCompletionTokens = 4096

// openAICompatProvider streams chat completions from any OpenAI-compatible
// endpoint. Groq, OpenRouter, and Fireworks all speak this wire protocol;
// they differ only in base URL and credentials.
type openAICompatProvider struct {
	client openai.Client
	vendor string
}

func newOpenAICompatProvider(vendor, baseURL, apiKey string) (*openAICompatProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key not configured", vendor)
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openAICompatProvider{
		client: client,
		vendor: vendor,
	}, nil
}

// Chat implements model.Provider with streaming support.
func (p *openAICompatProvider) Chat(ctx context.Context, req model.ChatRequest, callback model.StreamCallback) error {
	params := openai.ChatCompletionNewParams{
		Messages:  convertMessages(req),
		Model:     openai.ChatModel(req.Model),
		MaxTokens: openai.Int(maxCompletionTokens),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			if callback != nil {
				if err := callback(chunk.Choices[0].Delta.Content); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("%s streaming error: %w", p.vendor, err)
	}
	return nil
}

// convertMessages maps the normalized request to the OpenAI message union,
// prepending the system prompt when present.
func convertMessages(req model.ChatRequest) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		out = append(out, openai.SystemMessage(req.SystemPrompt))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case model.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case model.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
