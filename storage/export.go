package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nexus/model"
)

// ExportSnapshot is the export/import round-trip shape: a timestamped copy
// of conversations, settings, and personas.
type ExportSnapshot struct {
	Conversations []model.Conversation `json:"conversations"`
	Settings      model.AppSettings    `json:"settings"`
	Personas      []model.Persona      `json:"personas"`
	ExportedAt    time.Time            `json:"exportedAt"`
}

// Export produces a snapshot of the current state.
func (s *Store) Export() ExportSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportSnapshot{
		Conversations: cloneConversations(s.state.Conversations),
		Settings:      s.state.Settings,
		Personas:      clonePersonas(s.state.Personas),
		ExportedAt:    time.Now(),
	}
}

// Import replaces conversations, settings, and personas with the snapshot's
// contents. The active conversation becomes the head of the imported list.
func (s *Store) Import(snap ExportSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Conversations = cloneConversations(snap.Conversations)
	s.state.Settings = snap.Settings
	s.state.Personas = clonePersonas(snap.Personas)
	if s.state.Personas == nil {
		s.state.Personas = model.DefaultPersonas()
	}
	if len(s.state.Conversations) > 0 {
		s.state.CurrentConversationID = s.state.Conversations[0].ID
	} else {
		s.state.CurrentConversationID = ""
	}
	s.persist()
}

// ExportToJSON writes a snapshot to the given path.
func (s *Store) ExportToJSON(exportPath string) error {
	snap := s.Export()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// 0600 - exports contain conversation history
	if err := os.WriteFile(exportPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ImportFromJSON reads a snapshot from the given path and applies it.
func (s *Store) ImportFromJSON(importPath string) error {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var snap ExportSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal import: %w", err)
	}

	s.Import(snap)
	return nil
}

// GenerateExportPath builds a default timestamped export path under the
// user's Downloads directory.
func GenerateExportPath(label string) string {
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir = os.Getenv("USERPROFILE") // Windows fallback
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("nexus-export-%s-%s.json", SanitizeFilename(label), timestamp)
	return filepath.Join(homeDir, "Downloads", filename)
}

// SanitizeFilename replaces characters that are invalid in filenames.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
		"\"", "-", "<", "-", ">", "-", "|", "-", " ", "-",
		"\n", "-", "\r", "-",
	)
	name = replacer.Replace(name)
	name = strings.Trim(name, "-.")

	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "export"
	}
	return name
}
