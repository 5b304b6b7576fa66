// Package faceit provides a minimal client for the FACEIT Data API v4.
package faceit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the root endpoint for the FACEIT Data API v4.
const DefaultBaseURL = "https://open.faceit.com/data/v4"

// Client is a minimal FACEIT Data API v4 client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a FACEIT API client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET request against the FACEIT API and
// JSON-decodes the response body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// GetMatch returns the details of a single match, including both rosters.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchDetail, error) {
	var m MatchDetail
	if err := c.get(ctx, "/matches/"+url.PathEscape(matchID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchHistory returns up to limit recent matches of a player for game,
// newest first as the API orders them.
func (c *Client) GetMatchHistory(ctx context.Context, playerID, game string, offset, limit int) ([]MatchHistoryItem, error) {
	var resp struct {
		Items []MatchHistoryItem `json:"items"`
	}
	path := fmt.Sprintf("/players/%s/history?game=%s&offset=%d&limit=%d",
		url.PathEscape(playerID), url.QueryEscape(game), offset, limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetMatchStats returns the scoreboard of a finished match.
func (c *Client) GetMatchStats(ctx context.Context, matchID string) (*MatchStats, error) {
	var s MatchStats
	if err := c.get(ctx, "/matches/"+url.PathEscape(matchID)+"/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
