package storage

import (
	"time"

	"github.com/google/uuid"

	"nexus/model"
)

// Repository operations. Every operation leaves the store consistent and
// immediately persisted. Operations against unknown conversation or message
// ids are silent no-ops with a sentinel return, never errors: a stale
// reference from an in-flight stream racing a user-initiated delete must
// not crash anything.

const newConversationTitle = "New Chat"

// ConversationUpdate is a partial-field merge for UpdateConversation. Nil
// fields are left untouched.
type ConversationUpdate struct {
	Title   *string
	Model   *string
	Persona *string
}

// MessageUpdate is a partial-field merge for UpdateMessage.
type MessageUpdate struct {
	Content     *string
	IsStreaming *bool
	Sources     []model.WebSource
}

// CreateConversation allocates a new empty conversation, prepends it to the
// list (most-recent-first is the canonical order), and makes it active.
// Empty modelID or personaID fall back to the settings defaults.
func (s *Store) CreateConversation(modelID, personaID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if modelID == "" {
		modelID = s.state.Settings.DefaultModel
	}
	if personaID == "" {
		personaID = s.state.Settings.DefaultPersona
	}

	now := time.Now()
	conv := model.Conversation{
		ID:        uuid.New().String(),
		Title:     newConversationTitle,
		Messages:  []model.Message{},
		Model:     modelID,
		Persona:   personaID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.state.Conversations = append([]model.Conversation{conv}, s.state.Conversations...)
	s.state.CurrentConversationID = conv.ID
	s.persist()
	return conv.ID
}

// DeleteConversation removes a conversation. When the active conversation is
// deleted, the new head of the list becomes active (or none if the list is
// empty). Branch children of the deleted conversation are not touched; they
// keep a dangling parent reference by design.
func (s *Store) DeleteConversation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	s.state.Conversations = append(s.state.Conversations[:idx], s.state.Conversations[idx+1:]...)
	if s.state.CurrentConversationID == id {
		if len(s.state.Conversations) > 0 {
			s.state.CurrentConversationID = s.state.Conversations[0].ID
		} else {
			s.state.CurrentConversationID = ""
		}
	}
	s.persist()
	return true
}

// UpdateConversation merges the given fields and refreshes UpdatedAt.
func (s *Store) UpdateConversation(id string, upd ConversationUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findConversation(id)
	if c == nil {
		return false
	}

	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Model != nil {
		c.Model = *upd.Model
	}
	if upd.Persona != nil {
		c.Persona = *upd.Persona
	}
	c.UpdatedAt = time.Now()
	s.persist()
	return true
}

// SetCurrentConversation activates the given conversation; an empty id
// clears the active conversation.
func (s *Store) SetCurrentConversation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.findConversation(id) == nil {
		return false
	}
	s.state.CurrentConversationID = id
	s.persist()
	return true
}

// BranchConversation creates a new conversation seeded with copies of the
// parent's messages [0..messageIndex], each re-identified with a fresh id,
// records the lineage, and activates the branch. An unknown parent id is a
// no-op returning the id unchanged.
func (s *Store) BranchConversation(parentID string, messageIndex int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.findConversation(parentID)
	if parent == nil || messageIndex < 0 {
		return parentID
	}

	end := messageIndex + 1
	if end > len(parent.Messages) {
		end = len(parent.Messages)
	}

	branched := cloneMessages(parent.Messages[:end])
	for i := range branched {
		branched[i].ID = uuid.New().String()
	}

	now := time.Now()
	bp := messageIndex
	conv := model.Conversation{
		ID:          uuid.New().String(),
		Title:       "Branch: " + parent.Title,
		Messages:    branched,
		Model:       parent.Model,
		Persona:     parent.Persona,
		CreatedAt:   now,
		UpdatedAt:   now,
		ParentID:    parentID,
		BranchPoint: &bp,
	}

	s.state.Conversations = append([]model.Conversation{conv}, s.state.Conversations...)
	s.state.CurrentConversationID = conv.ID
	s.persist()
	return conv.ID
}

// AddMessage assigns an id and creation timestamp, appends the message, and
// bumps UpdatedAt. The first user message also sets the conversation title.
// Returns "" when the conversation does not exist.
func (s *Store) AddMessage(conversationID string, msg model.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findConversation(conversationID)
	if c == nil {
		return ""
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now()

	if len(c.Messages) == 0 && msg.Role == model.RoleUser {
		c.Title = deriveTitle(msg.Content)
	}

	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	s.persist()
	return msg.ID
}

// UpdateMessage merges fields on the matching message only; no-op when
// either id is unknown.
func (s *Store) UpdateMessage(conversationID, messageID string, upd MessageUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findConversation(conversationID)
	if c == nil {
		return false
	}

	for i := range c.Messages {
		if c.Messages[i].ID != messageID {
			continue
		}
		if upd.Content != nil {
			c.Messages[i].Content = *upd.Content
		}
		if upd.IsStreaming != nil {
			c.Messages[i].IsStreaming = *upd.IsStreaming
		}
		if upd.Sources != nil {
			c.Messages[i].Sources = append([]model.WebSource(nil), upd.Sources...)
		}
		c.UpdatedAt = time.Now()
		s.persist()
		return true
	}
	return false
}

// UpdateStreamingMessage applies content and sources only while the message
// is still marked streaming; the check and the write happen under one lock.
// A message already finalized (by stop, preemption, or a racing delete) is
// left untouched, so a stale stream can never resurrect it.
func (s *Store) UpdateStreamingMessage(conversationID, messageID string, upd MessageUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findConversation(conversationID)
	if c == nil {
		return false
	}

	for i := range c.Messages {
		if c.Messages[i].ID != messageID {
			continue
		}
		if !c.Messages[i].IsStreaming {
			return false
		}
		if upd.Content != nil {
			c.Messages[i].Content = *upd.Content
		}
		if upd.Sources != nil {
			c.Messages[i].Sources = append([]model.WebSource(nil), upd.Sources...)
		}
		c.UpdatedAt = time.Now()
		s.persist()
		return true
	}
	return false
}

// DeleteMessage removes a message from a conversation.
func (s *Store) DeleteMessage(conversationID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findConversation(conversationID)
	if c == nil {
		return false
	}

	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			c.UpdatedAt = time.Now()
			s.persist()
			return true
		}
	}
	return false
}

// deriveTitle builds a conversation title from the first user message:
// the first 50 characters, with an ellipsis when truncated.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return content
}
