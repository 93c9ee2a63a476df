package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"nexus/model"
)

// Namespace is the fixed key under which the whole application state is
// persisted.
const Namespace = "nexus-ai-storage"

// State is the single serialized blob: everything the application persists,
// loaded whole at startup and rewritten whole on every mutation.
type State struct {
	Conversations         []model.Conversation     `json:"conversations"`
	CurrentConversationID string                   `json:"currentConversationId,omitempty"`
	Settings              model.AppSettings        `json:"settings"`
	Personas              []model.Persona          `json:"personas"`
	Documents             []model.UploadedDocument `json:"documents,omitempty"`
}

// Persister is the persistence port injected into the store. Load returns
// (nil, nil) when no prior state exists.
type Persister interface {
	Load() (*State, error)
	Save(*State) error
}

// FilePersister writes the state blob as one JSON file in the data
// directory.
type FilePersister struct {
	path string
}

// NewFilePersister creates the data directory if needed and returns a
// persister for the state file inside it.
func NewFilePersister(dataDir string) (*FilePersister, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FilePersister{path: filepath.Join(dataDir, Namespace+".json")}, nil
}

func (p *FilePersister) Load() (*State, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

func (p *FilePersister) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// 0600 - state contains conversation history
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Store is the state container owning all persisted entities. It is the
// only shared mutable resource: every component reads and writes through
// its methods, and each mutation is atomic and immediately persisted.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
}

// NewStore loads prior state through the persister (which may be nil for an
// ephemeral store) and falls back to defaults where the blob is empty.
func NewStore(persister Persister) (*Store, error) {
	s := &Store{persister: persister}

	if persister != nil {
		loaded, err := persister.Load()
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			s.state = *loaded
		}
	}

	if s.state.Personas == nil {
		s.state.Personas = model.DefaultPersonas()
	}
	if s.state.Settings == (model.AppSettings{}) {
		s.state.Settings = model.DefaultSettings()
	}

	return s, nil
}

// persist writes the whole state through the persistence port. Callers must
// hold the mutex. A failed write is logged, not propagated: in-memory state
// stays authoritative for the session.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(&s.state); err != nil {
		log.Warn().Err(err).Msg("failed to persist store state")
	}
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Conversations:         cloneConversations(s.state.Conversations),
		CurrentConversationID: s.state.CurrentConversationID,
		Settings:              s.state.Settings,
		Personas:              clonePersonas(s.state.Personas),
		Documents:             cloneDocuments(s.state.Documents),
	}
}

// Conversations returns a deep copy of all conversations in canonical
// most-recent-first order.
func (s *Store) Conversations() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConversations(s.state.Conversations)
}

// Conversation returns a deep copy of the conversation with the given id.
func (s *Store) Conversation(id string) (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findConversation(id)
	if c == nil {
		return model.Conversation{}, false
	}
	return cloneConversation(*c), true
}

// CurrentConversationID returns the id of the active conversation, or ""
// when none is active.
func (s *Store) CurrentConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentConversationID
}

// CurrentConversation returns a deep copy of the active conversation.
func (s *Store) CurrentConversation() (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findConversation(s.state.CurrentConversationID)
	if c == nil {
		return model.Conversation{}, false
	}
	return cloneConversation(*c), true
}

// Settings returns the current application settings.
func (s *Store) Settings() model.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// Personas returns a copy of all personas.
func (s *Store) Personas() []model.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePersonas(s.state.Personas)
}

// PersonaByID looks up a persona by id.
func (s *Store) PersonaByID(id string) (model.Persona, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Personas {
		if p.ID == id {
			return p, true
		}
	}
	return model.Persona{}, false
}

// Documents returns a copy of all uploaded documents.
func (s *Store) Documents() []model.UploadedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocuments(s.state.Documents)
}

// findConversation returns a pointer into the state slice. Callers must
// hold the mutex and must not retain the pointer past the critical section.
func (s *Store) findConversation(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == id {
			return &s.state.Conversations[i]
		}
	}
	return nil
}

func cloneConversation(c model.Conversation) model.Conversation {
	out := c
	out.Messages = cloneMessages(c.Messages)
	if c.BranchPoint != nil {
		bp := *c.BranchPoint
		out.BranchPoint = &bp
	}
	return out
}

func cloneConversations(conversations []model.Conversation) []model.Conversation {
	if conversations == nil {
		return nil
	}
	out := make([]model.Conversation, len(conversations))
	for i, c := range conversations {
		out[i] = cloneConversation(c)
	}
	return out
}

func cloneMessages(messages []model.Message) []model.Message {
	if messages == nil {
		return nil
	}
	out := make([]model.Message, len(messages))
	for i, m := range messages {
		out[i] = m
		if m.Sources != nil {
			out[i].Sources = append([]model.WebSource(nil), m.Sources...)
		}
	}
	return out
}

func clonePersonas(personas []model.Persona) []model.Persona {
	if personas == nil {
		return nil
	}
	return append([]model.Persona(nil), personas...)
}

func cloneDocuments(documents []model.UploadedDocument) []model.UploadedDocument {
	if documents == nil {
		return nil
	}
	out := make([]model.UploadedDocument, len(documents))
	for i, d := range documents {
		out[i] = d
		if d.Chunks != nil {
			out[i].Chunks = append([]model.DocumentChunk(nil), d.Chunks...)
		}
	}
	return out
}
