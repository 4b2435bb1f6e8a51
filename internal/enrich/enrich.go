package enrich

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/tkilaker/embers/internal/models"
)

// Enricher fetches the pages linked by external stories and extracts a
// readable excerpt for the RSS feed.
type Enricher struct {
	httpClient *http.Client
	workers    int
}

// New creates an enricher dispatching at most workers concurrent fetches.
func New(timeout time.Duration, workers int) *Enricher {
	if workers < 1 {
		workers = 1
	}
	return &Enricher{
		httpClient: &http.Client{Timeout: timeout},
		workers:    workers,
	}
}

// Excerpts returns an excerpt per story ID. Self posts and pages that fail
// to fetch or parse are skipped and logged; the map only holds successes.
func (e *Enricher) Excerpts(ctx context.Context, stories []models.Story) map[int]string {
	excerpts := make([]string, len(stories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, story := range stories {
		if story.URL == "" {
			continue
		}
		g.Go(func() error {
			excerpt, err := e.excerpt(ctx, story.URL)
			if err != nil {
				log.Printf("Skipping excerpt for story %d: %v", story.ID, err)
				return nil
			}
			excerpts[i] = excerpt
			return nil
		})
	}
	g.Wait()

	out := make(map[int]string)
	for i, excerpt := range excerpts {
		if excerpt != "" {
			out[stories[i].ID] = excerpt
		}
	}
	return out
}

func (e *Enricher) excerpt(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	return article.Excerpt, nil
}
