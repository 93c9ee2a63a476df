package model

import "time"

// DocumentChunk is a slice of an uploaded document's text.
type DocumentChunk struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Filename   string    `json:"filename"`
	PageNumber int       `json:"pageNumber,omitempty"`
	ChunkIndex int       `json:"chunkIndex"`
	Embedding  []float64 `json:"embedding,omitempty"`
}

// UploadedDocument is a user-attached document kept alongside conversations
// in the persisted store state.
type UploadedDocument struct {
	ID         string          `json:"id"`
	Filename   string          `json:"filename"`
	Type       string          `json:"type"`
	Size       int64           `json:"size"`
	Chunks     []DocumentChunk `json:"chunks"`
	UploadedAt time.Time       `json:"uploadedAt"`
}
