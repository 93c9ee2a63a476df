package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"nexus/model"
)

// GoogleProvider streams completions from the Gemini API. Unlike the
// chat-completions vendors, Gemini speaks a structured chat/turn protocol:
// prior messages become chat history and only the final user message is
// sent as the new turn.
type GoogleProvider struct {
	client *genai.Client
}

// NewGoogleProvider creates the Gemini gateway.
func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google AI API key not configured")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	return &GoogleProvider{client: client}, nil
}

// Close releases the underlying client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// Chat implements model.Provider with streaming support.
func (p *GoogleProvider) Chat(ctx context.Context, req model.ChatRequest, callback model.StreamCallback) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("no messages to send")
	}

	gm := p.client.GenerativeModel(resolveGeminiModel(req.Model))
	if req.SystemPrompt != "" {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	cs := gm.StartChat()
	for _, m := range req.Messages[:len(req.Messages)-1] {
		role := "model"
		if m.Role == model.RoleUser {
			role = "user"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	last := req.Messages[len(req.Messages)-1]
	iter := cs.SendMessageStream(ctx, genai.Text(last.Content))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			// gRPC reports cancellation as a status error; honor the
			// contract and surface the context error instead.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("Google AI streaming error: %w", err)
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				text, ok := part.(genai.Text)
				if !ok || text == "" || callback == nil {
					continue
				}
				if err := callback(string(text)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// resolveGeminiModel maps catalog ids to the names the Gemini API expects.
func resolveGeminiModel(id string) string {
	if id == "gemini-2.0-flash" {
		return "gemini-2.0-flash-exp"
	}
	return id
}
