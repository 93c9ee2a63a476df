package model

import "time"

// MessageRole identifies who authored a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is a single entry in a conversation.
//
// For assistant messages the content is rewritten with the full accumulated
// text on every streamed delta, so readers always see a complete string and
// never have to concatenate fragments themselves. IsStreaming stays true
// from placeholder creation until the stream finishes, errors out, or is
// stopped by the user.
type Message struct {
	ID          string      `json:"id"`
	Role        MessageRole `json:"role"`
	Content     string      `json:"content"`
	CreatedAt   time.Time   `json:"createdAt"`
	Model       string      `json:"model,omitempty"`
	IsStreaming bool        `json:"isStreaming,omitempty"`
	Sources     []WebSource `json:"sources,omitempty"`
}

// WebSource is a citation record attached to an assistant message when web
// search augmented the request. It is passed through from the search
// collaborator unchanged.
type WebSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Favicon string `json:"favicon,omitempty"`
}
