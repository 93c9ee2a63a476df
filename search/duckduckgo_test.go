package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(instantURL, liteURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		instantURL: instantURL,
		liteURL:    liteURL,
	}
}

func TestSearchInstantAnswers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "golang" {
			t.Errorf("query = %q, want %q", got, "golang")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Heading": "Go (programming language)",
			"AbstractText": "Go is a statically typed language.",
			"AbstractURL": "https://en.wikipedia.org/wiki/Go",
			"RelatedTopics": [
				{"Text": "Goroutine - A lightweight thread.", "FirstURL": "https://example.com/goroutine"},
				{"Text": "", "FirstURL": "https://example.com/skipped"},
				{"Text": "Channels - Typed conduits.", "FirstURL": "https://example.com/channels"},
				{"Text": "GC - Garbage collection.", "FirstURL": "https://example.com/gc"},
				{"Text": "Overflow - Dropped.", "FirstURL": "https://example.com/overflow"}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "http://invalid.invalid")
	results, err := c.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("got %d results, want abstract + 3 topics", len(results))
	}
	if results[0].Title != "Go (programming language)" {
		t.Errorf("abstract title = %q", results[0].Title)
	}
	if results[0].URL != "https://en.wikipedia.org/wiki/Go" {
		t.Errorf("abstract url = %q", results[0].URL)
	}
	if results[1].Title != "Goroutine" {
		t.Errorf("topic title = %q, want the text before the dash", results[1].Title)
	}
	for _, r := range results {
		if r.URL == "https://example.com/skipped" {
			t.Error("topics without text should be skipped")
		}
		if r.URL == "https://example.com/overflow" {
			t.Error("related topics should be capped")
		}
		if r.Favicon == "" {
			t.Errorf("result %q has no favicon", r.Title)
		}
	}
}

func TestSearchFallsBackToLite(t *testing.T) {
	instant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer instant.Close()

	lite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != browserUserAgent {
			t.Errorf("lite request user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><table>
			<tr><td><a class="result-link" href="https://go.dev/doc">Go   Documentation</a></td></tr>
			<tr><td class="result-snippet">  Official   Go docs.  </td></tr>
			<tr><td><a class="result-link" href="https://pkg.go.dev">Package index</a></td></tr>
			<tr><td class="result-snippet">Standard library reference.</td></tr>
		</table></body></html>`))
	}))
	defer lite.Close()

	c := newTestClient(instant.URL, lite.URL)
	results, err := c.Search(context.Background(), "go docs")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Go Documentation" {
		t.Errorf("title = %q, want whitespace collapsed", results[0].Title)
	}
	if results[0].Snippet != "Official Go docs." {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
	if results[0].URL != "https://go.dev/doc" {
		t.Errorf("url = %q", results[0].URL)
	}
	if results[0].Favicon != "https://www.google.com/s2/favicons?domain=go.dev&sz=32" {
		t.Errorf("favicon = %q", results[0].Favicon)
	}
}

func TestSearchLiteCapsResults(t *testing.T) {
	instant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer instant.Close()

	lite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body>
			<a class="result-link" href="https://one.example">1</a>
			<a class="result-link" href="https://two.example">2</a>
			<a class="result-link" href="https://three.example">3</a>
			<a class="result-link" href="https://four.example">4</a>
			<a class="result-link" href="https://five.example">5</a>
			<a class="result-link" href="https://six.example">6</a>
		</body></html>`))
	}))
	defer lite.Close()

	c := newTestClient(instant.URL, lite.URL)
	results, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != maxLiteResults {
		t.Errorf("got %d results, want capped at %d", len(results), maxLiteResults)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient()
	if _, err := c.Search(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty query")
	}
}

func TestTopicTitle(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Goroutine - A lightweight thread.", "Goroutine"},
		{"No separator here", "No separator here"},
		{"", "Related"},
	}

	for _, tt := range tests {
		if got := topicTitle(tt.text); got != tt.want {
			t.Errorf("topicTitle(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
