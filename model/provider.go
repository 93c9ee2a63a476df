package model

import "context"

// Provider abstracts the streaming-completion capability of one upstream
// LLM vendor. Implementations differ in wire protocol (Google speaks a
// structured chat/turn API, the others a delta-based chunked HTTP stream)
// but all present the same shape to the orchestrator: a cancellable
// sequence of text deltas.
//
// The interface lives in the model package so provider implementations can
// import model without creating an import cycle.
type Provider interface {
	// Chat sends the request and streams response text back through the
	// callback, one delta at a time. A nil return means the stream ended
	// normally; cancellation of ctx aborts the read and surfaces as a
	// context error.
	Chat(ctx context.Context, req ChatRequest, callback StreamCallback) error
}

// StreamCallback receives each text delta as it arrives. Returning an error
// aborts the stream.
type StreamCallback func(delta string) error

// ChatMessage is the reduced {role, content} form sent to providers.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// ChatRequest is the normalized outbound payload for one completion.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Messages     []ChatMessage
}
