package model

import "time"

// Conversation is a titled, ordered sequence of messages bound to a model
// and persona. Conversations created by branching record their lineage via
// ParentID and BranchPoint; the branch holds copies of the parent's messages
// up to and including the branch point, each with a fresh id.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Persona     string    `json:"persona,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ParentID    string    `json:"parentId,omitempty"`
	BranchPoint *int      `json:"branchPoint,omitempty"`
}

// LastUserMessage returns the most recent user-role message, if any.
func (c *Conversation) LastUserMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}
