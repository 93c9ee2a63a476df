package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	_ "modernc.org/sqlite"

	"nexus/model"
)

// MessageMatch is one search hit within a conversation.
type MessageMatch struct {
	ConversationID    string
	ConversationTitle string
	MessageIndex      int
	Role              model.MessageRole
	Content           string
	Preview           string
	CreatedAt         time.Time
}

// SearchIndex is a sqlite-backed index of message content across all
// conversations. It is rebuilt from store snapshots rather than updated on
// the store's write path, so indexing lag never blocks a mutation.
type SearchIndex struct {
	db *sql.DB
}

// OpenSearchIndex opens (or creates) the index database at the given path.
func OpenSearchIndex(dbPath string) (*SearchIndex, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		conversation_id    TEXT NOT NULL,
		conversation_title TEXT NOT NULL,
		message_index      INTEGER NOT NULL,
		role               TEXT NOT NULL,
		content            TEXT NOT NULL,
		created_at         TIMESTAMP NOT NULL,
		PRIMARY KEY (conversation_id, message_index)
	);
	CREATE INDEX IF NOT EXISTS idx_messages_content ON messages(content);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create search index schema: %w", err)
	}

	return &SearchIndex{db: db}, nil
}

// Close releases the underlying database.
func (si *SearchIndex) Close() error {
	return si.db.Close()
}

// Reindex replaces the whole index with the given conversations. System
// messages are not indexed.
func (si *SearchIndex) Reindex(conversations []model.Conversation) error {
	tx, err := si.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin reindex: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (conversation_id, conversation_title, message_index, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, conv := range conversations {
		for i, msg := range conv.Messages {
			if msg.Role == model.RoleSystem {
				continue
			}
			if _, err := stmt.Exec(conv.ID, conv.Title, i, string(msg.Role), msg.Content, msg.CreatedAt); err != nil {
				return fmt.Errorf("failed to index message: %w", err)
			}
		}
	}

	return tx.Commit()
}

// SearchMessages returns case-insensitive substring matches across all
// indexed messages, newest first.
func (si *SearchIndex) SearchMessages(query string) ([]MessageMatch, error) {
	if query == "" {
		return []MessageMatch{}, nil
	}

	rows, err := si.db.Query(`
		SELECT conversation_id, conversation_title, message_index, role, content, created_at
		FROM messages
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY created_at DESC`, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query search index: %w", err)
	}
	defer rows.Close()

	var matches []MessageMatch
	for rows.Next() {
		var m MessageMatch
		var role string
		if err := rows.Scan(&m.ConversationID, &m.ConversationTitle, &m.MessageIndex, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		m.Role = model.MessageRole(role)
		m.Preview = previewOf(m.Content)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// SearchTitles fuzzy-matches conversation titles, best match first.
func SearchTitles(conversations []model.Conversation, query string) []model.Conversation {
	if query == "" {
		return []model.Conversation{}
	}

	titles := make([]string, len(conversations))
	for i, c := range conversations {
		titles[i] = c.Title
	}

	results := fuzzy.Find(query, titles)
	out := make([]model.Conversation, 0, len(results))
	for _, r := range results {
		out = append(out, conversations[r.Index])
	}
	return out
}

// escapeLike neutralizes LIKE wildcards so queries match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func previewOf(content string) string {
	if len(content) > 100 {
		return content[:100] + "..."
	}
	return content
}
