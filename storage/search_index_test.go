package storage

import (
	"path/filepath"
	"testing"
	"time"

	"nexus/model"
)

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	si, err := OpenSearchIndex(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenSearchIndex failed: %v", err)
	}
	t.Cleanup(func() { si.Close() })
	return si
}

func testConversations() []model.Conversation {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Conversation{
		{
			ID:    "c1",
			Title: "Kubernetes networking",
			Messages: []model.Message{
				{Role: model.RoleUser, Content: "How does kube-proxy work?", CreatedAt: base},
				{Role: model.RoleAssistant, Content: "kube-proxy programs iptables rules", CreatedAt: base.Add(time.Minute)},
				{Role: model.RoleSystem, Content: "hidden system text", CreatedAt: base.Add(2 * time.Minute)},
			},
		},
		{
			ID:    "c2",
			Title: "Groceries",
			Messages: []model.Message{
				{Role: model.RoleUser, Content: "remind me about milk", CreatedAt: base.Add(time.Hour)},
			},
		},
	}
}

func TestSearchMessages(t *testing.T) {
	si := newTestIndex(t)
	if err := si.Reindex(testConversations()); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}

	matches, err := si.SearchMessages("KUBE-PROXY")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (case-insensitive)", len(matches))
	}
	for _, m := range matches {
		if m.ConversationID != "c1" || m.ConversationTitle != "Kubernetes networking" {
			t.Errorf("match attributed to wrong conversation: %+v", m)
		}
	}
}

func TestSearchMessagesNewestFirst(t *testing.T) {
	si := newTestIndex(t)
	if err := si.Reindex(testConversations()); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}

	matches, err := si.SearchMessages("m")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].CreatedAt.After(matches[i-1].CreatedAt) {
			t.Fatal("matches are not ordered newest first")
		}
	}
}

func TestSearchMessagesExcludesSystem(t *testing.T) {
	si := newTestIndex(t)
	if err := si.Reindex(testConversations()); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}

	matches, err := si.SearchMessages("hidden system text")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("system messages should not be indexed, got %d matches", len(matches))
	}
}

func TestSearchMessagesEmptyQuery(t *testing.T) {
	si := newTestIndex(t)
	matches, err := si.SearchMessages("")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(matches) != 0 {
		t.Error("empty query should match nothing")
	}
}

func TestReindexReplaces(t *testing.T) {
	si := newTestIndex(t)
	if err := si.Reindex(testConversations()); err != nil {
		t.Fatalf("first Reindex failed: %v", err)
	}
	if err := si.Reindex(nil); err != nil {
		t.Fatalf("second Reindex failed: %v", err)
	}

	matches, err := si.SearchMessages("kube-proxy")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(matches) != 0 {
		t.Error("reindex should replace previous contents")
	}
}

func TestPreviewTruncation(t *testing.T) {
	si := newTestIndex(t)
	long := ""
	for len(long) < 150 {
		long += "needle padding "
	}
	convs := []model.Conversation{{
		ID:    "c1",
		Title: "Long",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: long, CreatedAt: time.Now()},
		},
	}}
	if err := si.Reindex(convs); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}

	matches, err := si.SearchMessages("needle")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if got, want := matches[0].Preview, long[:100]+"..."; got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}
	if matches[0].Content != long {
		t.Error("full content should be preserved alongside the preview")
	}
}

func TestSearchMessagesMatchesWildcardsLiterally(t *testing.T) {
	si := newTestIndex(t)
	convs := []model.Conversation{{
		ID:    "c1",
		Title: "Wildcards",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "progress at 100% now", CreatedAt: time.Now()},
			{Role: model.RoleUser, Content: "progress at 100x now", CreatedAt: time.Now()},
			{Role: model.RoleUser, Content: "snake_case naming", CreatedAt: time.Now()},
			{Role: model.RoleUser, Content: "snake case naming", CreatedAt: time.Now()},
		},
	}}
	if err := si.Reindex(convs); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}

	tests := []struct {
		query string
		want  string
	}{
		{"100%", "progress at 100% now"},
		{"snake_", "snake_case naming"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches, err := si.SearchMessages(tt.query)
			if err != nil {
				t.Fatalf("SearchMessages failed: %v", err)
			}
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want the literal match only", len(matches))
			}
			if matches[0].Content != tt.want {
				t.Errorf("matched %q, want %q", matches[0].Content, tt.want)
			}
		})
	}
}

func TestSearchTitles(t *testing.T) {
	convs := testConversations()

	got := SearchTitles(convs, "kbnts")
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("fuzzy title search failed: %+v", got)
	}

	if len(SearchTitles(convs, "")) != 0 {
		t.Error("empty query should match nothing")
	}
	if len(SearchTitles(convs, "zzzz")) != 0 {
		t.Error("non-matching query should return no conversations")
	}
}
