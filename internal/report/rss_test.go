package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkilaker/embers/internal/config"
	"github.com/tkilaker/embers/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		FeedTitle:       "Test Feed",
		FeedDescription: "A test snapshot",
		FeedLink:        "http://localhost:8080",
		FeedAuthor:      "tester",
	}
}

func testStories() []models.Story {
	return []models.Story{
		{
			ID:          1,
			Title:       "An external story",
			URL:         "https://example.com/post",
			Score:       10,
			NumComments: 5,
			Author:      "alice",
			Time:        time.Unix(1700000000, 0).UTC(),
		},
		{
			ID:     2,
			Title:  "Ask HN: a self post",
			Score:  3,
			Author: "bob",
			Time:   time.Unix(1700003600, 0).UTC(),
		},
	}
}

func TestFeed(t *testing.T) {
	rss, err := Feed(testStories(), nil, testConfig())
	require.NoError(t, err)

	assert.Contains(t, rss, "<title>Test Feed</title>")
	assert.Contains(t, rss, "An external story")
	assert.Contains(t, rss, "https://example.com/post")
	// Self posts link back to the discussion page.
	assert.Contains(t, rss, "https://news.ycombinator.com/item?id=2")
	// Without an excerpt the description falls back to the score line.
	assert.Contains(t, rss, "10 points, 5 comments")
}

func TestFeedUsesExcerpts(t *testing.T) {
	excerpts := map[int]string{1: "A readable excerpt of the page."}

	rss, err := Feed(testStories(), excerpts, testConfig())
	require.NoError(t, err)
	assert.Contains(t, rss, "A readable excerpt of the page.")
}

func TestFeedEmpty(t *testing.T) {
	rss, err := Feed(nil, nil, testConfig())
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Test Feed</title>")
}

func TestWriteFeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFeed(dir, testStories(), nil, testConfig()))

	data, err := os.ReadFile(filepath.Join(dir, FeedFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "An external story")
}
