package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	tavilyEndpoint   = "https://api.tavily.com/search"
	searchDepth      = "basic"
	maxSearchResults = 3
	// snippetLimit truncates each result's content in the formatted output.
	snippetLimit = 250
)

// WebSearch queries the Tavily search API for live information.
type WebSearch struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewWebSearch creates the web search tool. The HTTP client's timeout
// bounds each invocation.
func NewWebSearch(apiKey string, client *http.Client) *WebSearch {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebSearch{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   client,
	}
}

// Name implements Tool.
func (w *WebSearch) Name() string { return "websearch" }

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Invoke implements Tool. Results come back as a bullet list of title,
// URL, and truncated content per hit.
func (w *WebSearch) Invoke(ctx context.Context, query, option string) (string, error) {
	if w.apiKey == "" {
		return "", fmt.Errorf("web search unavailable: no API key configured")
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:      w.apiKey,
		Query:       query,
		SearchDepth: searchDepth,
		MaxResults:  maxSearchResults,
	})
	if err != nil {
		return "", fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("web search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("web search failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "No search results found", nil
	}

	var entries []string
	for _, r := range parsed.Results {
		content := r.Content
		if len(content) > snippetLimit {
			content = content[:snippetLimit]
		}
		entries = append(entries, fmt.Sprintf("• %s\n%s\n%s...", r.Title, r.URL, content))
	}
	return strings.Join(entries, "\n\n"), nil
}

// RelaxQuery implements Tool: a multi-word search query falls back to its
// first two words.
func (w *WebSearch) RelaxQuery(query string) string {
	words := strings.Fields(query)
	if len(words) > 2 {
		return strings.Join(words[:2], " ")
	}
	return query
}
