package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Upstream API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Batch
	TopStories   int
	FetchWorkers int
	OutputDir    string

	// Optional Postgres archive (disabled when empty)
	DatabaseURL string

	// Optional readable-excerpt enrichment for the RSS feed
	FetchExcerpts bool

	// Report server
	Port int

	// RSS Feed
	FeedTitle       string
	FeedDescription string
	FeedLink        string
	FeedAuthor      string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:      getEnv("HN_API_URL", "https://hacker-news.firebaseio.com/v0"),
		HTTPTimeout:     time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		TopStories:      getEnvAsInt("TOP_STORIES", 20),
		FetchWorkers:    getEnvAsInt("FETCH_WORKERS", 8),
		OutputDir:       getEnv("OUTPUT_DIR", "out"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		FetchExcerpts:   getEnvAsBool("FETCH_EXCERPTS", false),
		Port:            getEnvAsInt("PORT", 8080),
		FeedTitle:       getEnv("FEED_TITLE", "Embers Front Page Snapshot"),
		FeedDescription: getEnv("FEED_DESCRIPTION", "Top Hacker News stories from the latest snapshot"),
		FeedLink:        getEnv("FEED_LINK", "http://localhost:8080"),
		FeedAuthor:      getEnv("FEED_AUTHOR", "Embers"),
	}

	// Validate required fields
	if cfg.TopStories < 1 {
		return nil, fmt.Errorf("TOP_STORIES must be positive")
	}
	if cfg.FetchWorkers < 1 {
		return nil, fmt.Errorf("FETCH_WORKERS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
