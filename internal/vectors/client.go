// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectors is the HTTP client for the semantic retrieval service:
// it submits text and receives the closest indexed works with similarity
// scores. Embedding happens inside the service; this client never sees
// raw vectors.
package vectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sgalonska/another-doctor-app/internal/matching"
)

// Client calls the semantic retrieval service.
type Client struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	HTTP      *http.Client
}

// searchRequest is the service's search payload.
type searchRequest struct {
	Text           string  `json:"text"`
	TopK           int     `json:"top_k"`
	ScoreThreshold float64 `json:"score_threshold"`
}

// searchResponse is the service's search result envelope.
type searchResponse struct {
	Results []matching.Candidate `json:"results"`
}

// Search embeds text and returns up to topK candidate works with
// similarity at or above threshold.
func (c *Client) Search(ctx context.Context, text string, topK int, threshold float64) ([]matching.Candidate, error) {
	body, err := json.Marshal(searchRequest{
		Text:           text,
		TopK:           topK,
		ScoreThreshold: threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic retrieval request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic retrieval service returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing semantic retrieval response: %w", err)
	}
	return sr.Results, nil
}
