package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Sentinel results returned instead of errors. The search adapter never
// fails its caller; a failed lookup degrades to one of these strings.
const (
	SearchErrorSentinel = "No results found due to search error."
	NoResultsSentinel   = "No results found."
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResult struct {
	Content string `json:"content"`
}

type searchResponse struct {
	Answer  string         `json:"answer"`
	Results []searchResult `json:"results"`
}

// SearchClient is a single-shot bridge to a Tavily-style search API.
type SearchClient struct {
	client   *http.Client
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

func NewSearchClient(endpoint, apiKey string, logger *slog.Logger) *SearchClient {
	return &SearchClient{
		client:   &http.Client{},
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Search runs one query and returns plain text. Extraction prefers the
// direct answer field; otherwise result contents are joined with blank
// lines. Every failure path returns a sentinel string.
func (c *SearchClient) Search(ctx context.Context, query string) string {
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		c.logger.Error("search: failed to marshal request", "error", err)
		return SearchErrorSentinel
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		c.logger.Error("search: failed to create request", "error", err)
		return SearchErrorSentinel
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("search: sending request", "query", query)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("search: request failed", "error", err)
		return SearchErrorSentinel
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		c.logger.Error("search: API returned error", "status", resp.StatusCode, "body", string(text))
		return SearchErrorSentinel
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Error("search: failed to decode response", "error", err)
		return SearchErrorSentinel
	}

	if data.Answer != "" {
		return data.Answer
	}

	if len(data.Results) > 0 {
		parts := make([]string, 0, len(data.Results))
		for _, r := range data.Results {
			parts = append(parts, r.Content)
		}
		return strings.Join(parts, "\n\n")
	}

	return NoResultsSentinel
}
