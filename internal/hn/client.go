package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Hacker News Firebase API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// ErrNotFound is returned when the API has no record for an item ID,
// which is how deleted or never-existing items surface upstream.
var ErrNotFound = errors.New("hn: item not found")

// Item is an item record as returned by the upstream API. Stories and
// comments share the same schema; Type discriminates.
type Item struct {
	ID          int    `json:"id"`
	Deleted     bool   `json:"deleted,omitempty"`
	Type        string `json:"type"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time"`
	Text        string `json:"text,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
}

// Client is a read-only client for the Hacker News API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client against the given base URL. An empty baseURL
// selects the public API.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// TopStories returns the current front-page ranking as an ordered list of
// item IDs.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}
	return ids, nil
}

// Item fetches a single story or comment record by ID. Returns ErrNotFound
// when the API reports no such item.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	var item Item
	if err := c.get(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id), &item); err != nil {
		return nil, fmt.Errorf("failed to fetch item %d: %w", id, err)
	}
	if item.ID == 0 {
		return nil, ErrNotFound
	}
	return &item, nil
}

// get performs a GET request and unmarshals the JSON response into v.
func (c *Client) get(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// The API answers "null" for deleted or unknown item IDs.
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return ErrNotFound
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
