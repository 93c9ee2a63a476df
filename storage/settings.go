package storage

import (
	"github.com/google/uuid"

	"nexus/model"
)

// SettingsUpdate is a partial-field merge for UpdateSettings.
type SettingsUpdate struct {
	Theme           *string
	DefaultModel    *string
	DefaultPersona  *string
	StreamResponses *bool
	EnableVoice     *bool
	EnableWebSearch *bool
	EnableArtifacts *bool
	FontSize        *string
	SendWithEnter   *bool
}

// UpdateSettings merges the given fields into the application settings.
func (s *Store) UpdateSettings(upd SettingsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upd.Theme != nil {
		s.state.Settings.Theme = *upd.Theme
	}
	if upd.DefaultModel != nil {
		s.state.Settings.DefaultModel = *upd.DefaultModel
	}
	if upd.DefaultPersona != nil {
		s.state.Settings.DefaultPersona = *upd.DefaultPersona
	}
	if upd.StreamResponses != nil {
		s.state.Settings.StreamResponses = *upd.StreamResponses
	}
	if upd.EnableVoice != nil {
		s.state.Settings.EnableVoice = *upd.EnableVoice
	}
	if upd.EnableWebSearch != nil {
		s.state.Settings.EnableWebSearch = *upd.EnableWebSearch
	}
	if upd.EnableArtifacts != nil {
		s.state.Settings.EnableArtifacts = *upd.EnableArtifacts
	}
	if upd.FontSize != nil {
		s.state.Settings.FontSize = *upd.FontSize
	}
	if upd.SendWithEnter != nil {
		s.state.Settings.SendWithEnter = *upd.SendWithEnter
	}
	s.persist()
}

// PersonaUpdate is a partial-field merge for UpdatePersona.
type PersonaUpdate struct {
	Name         *string
	Description  *string
	SystemPrompt *string
	Avatar       *string
	Color        *string
}

// AddPersona registers a new persona with a fresh id.
func (s *Store) AddPersona(p model.Persona) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New().String()
	p.IsDefault = false
	s.state.Personas = append(s.state.Personas, p)
	s.persist()
	return p.ID
}

// UpdatePersona merges fields on the matching persona.
func (s *Store) UpdatePersona(id string, upd PersonaUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Personas {
		if s.state.Personas[i].ID != id {
			continue
		}
		if upd.Name != nil {
			s.state.Personas[i].Name = *upd.Name
		}
		if upd.Description != nil {
			s.state.Personas[i].Description = *upd.Description
		}
		if upd.SystemPrompt != nil {
			s.state.Personas[i].SystemPrompt = *upd.SystemPrompt
		}
		if upd.Avatar != nil {
			s.state.Personas[i].Avatar = *upd.Avatar
		}
		if upd.Color != nil {
			s.state.Personas[i].Color = *upd.Color
		}
		s.persist()
		return true
	}
	return false
}

// DeletePersona removes a persona. Default personas cannot be deleted.
func (s *Store) DeletePersona(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Personas {
		if s.state.Personas[i].ID == id && !s.state.Personas[i].IsDefault {
			s.state.Personas = append(s.state.Personas[:i], s.state.Personas[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// AddDocument stores an uploaded document.
func (s *Store) AddDocument(doc model.UploadedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Documents = append(s.state.Documents, doc)
	s.persist()
}

// RemoveDocument deletes an uploaded document by id.
func (s *Store) RemoveDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Documents {
		if s.state.Documents[i].ID == id {
			s.state.Documents = append(s.state.Documents[:i], s.state.Documents[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// ClearAll resets the store to factory defaults.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{
		Settings: model.DefaultSettings(),
		Personas: model.DefaultPersonas(),
	}
	s.persist()
}
