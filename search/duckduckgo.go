// Package search implements the web-search collaborator: a best-effort
// DuckDuckGo client used to attach citations to assistant messages. It must
// never be a blocking dependency; callers treat an empty result list and an
// error the same way.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"nexus/model"
)

const (
	instantAnswerURL = "https://api.duckduckgo.com/"
	liteSearchURL    = "https://lite.duckduckgo.com/lite/"

	// The lite endpoint serves real results only to browser user agents.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxLiteResults   = 5
	maxRelatedTopics = 3
)

// Client queries DuckDuckGo for web sources.
type Client struct {
	httpClient *http.Client
	instantURL string
	liteURL    string
}

// NewClient returns a search client with sane timeouts.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		instantURL: instantAnswerURL,
		liteURL:    liteSearchURL,
	}
}

// Search returns an ordered list of sources for the query. The instant
// answer API is tried first; when it yields nothing, the lite HTML endpoint
// is scraped. Partial results are returned even when a stage fails.
func (c *Client) Search(ctx context.Context, query string) ([]model.WebSource, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	results, err := c.instantAnswers(ctx, query)
	if err != nil {
		log.Debug().Err(err).Msg("instant answer lookup failed")
	}

	if len(results) == 0 {
		results, err = c.liteResults(ctx, query)
		if err != nil {
			log.Debug().Err(err).Msg("lite search failed")
			return results, err
		}
	}

	return results, nil
}

// instantAnswer mirrors the DuckDuckGo instant answer response shape.
type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Icon     struct {
			URL string `json:"URL"`
		} `json:"Icon"`
	} `json:"RelatedTopics"`
}

func (c *Client) instantAnswers(ctx context.Context, query string) ([]model.WebSource, error) {
	u := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1", c.instantURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("failed to decode instant answer: %w", err)
	}

	var results []model.WebSource
	if answer.AbstractText != "" {
		title := answer.Heading
		if title == "" {
			title = "DuckDuckGo Answer"
		}
		sourceURL := answer.AbstractURL
		if sourceURL == "" {
			sourceURL = "https://duckduckgo.com"
		}
		results = append(results, model.WebSource{
			Title:   title,
			URL:     sourceURL,
			Snippet: answer.AbstractText,
			Favicon: "https://duckduckgo.com/favicon.ico",
		})
	}

	for _, topic := range answer.RelatedTopics {
		if len(results) >= 1+maxRelatedTopics {
			break
		}
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		favicon := topic.Icon.URL
		if favicon == "" {
			favicon = "https://duckduckgo.com/favicon.ico"
		}
		results = append(results, model.WebSource{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
			Favicon: favicon,
		})
	}

	return results, nil
}

func (c *Client) liteResults(ctx context.Context, query string) ([]model.WebSource, error) {
	u := fmt.Sprintf("%s?q=%s", c.liteURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lite results: %w", err)
	}

	var snippets []string
	doc.Find("td.result-snippet").Each(func(_ int, s *goquery.Selection) {
		snippets = append(snippets, trimText(s.Text()))
	})

	var results []model.WebSource
	doc.Find("a.result-link").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		parsed, err := url.Parse(href)
		if err != nil || parsed.Hostname() == "" {
			return true
		}

		title := trimText(s.Text())
		if title == "" {
			title = parsed.Hostname()
		}
		snippet := ""
		if i < len(snippets) {
			snippet = snippets[i]
		}

		results = append(results, model.WebSource{
			Title:   title,
			URL:     href,
			Snippet: snippet,
			Favicon: fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", parsed.Hostname()),
		})
		return len(results) < maxLiteResults
	})

	return results, nil
}
