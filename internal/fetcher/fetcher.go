package fetcher

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tkilaker/embers/internal/hn"
	"github.com/tkilaker/embers/internal/models"
)

// Fetcher collects a front-page snapshot from the Hacker News API.
type Fetcher struct {
	client  *hn.Client
	workers int
}

// New creates a fetcher dispatching at most workers concurrent requests.
func New(client *hn.Client, workers int) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{client: client, workers: workers}
}

// Fetch retrieves the first n top stories and their top-level comments.
// A failed top-list call aborts the run; a failed story or comment fetch
// is logged and skipped. Stories keep the upstream ranking order, comments
// keep the per-story kid order.
func (f *Fetcher) Fetch(ctx context.Context, n int) (*models.Snapshot, error) {
	if n < 1 {
		return nil, fmt.Errorf("story count must be positive, got %d", n)
	}

	ids, err := f.client.TopStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranking: %w", err)
	}
	if n > len(ids) {
		n = len(ids)
	}
	ids = dedupe(ids[:n])

	items := f.fetchStories(ctx, ids)

	snap := &models.Snapshot{FetchedAt: time.Now()}
	var kids [][]int
	for _, item := range items {
		if item == nil {
			continue
		}
		snap.Stories = append(snap.Stories, storyFromItem(item))
		kids = append(kids, item.Kids)
	}

	for i, story := range snap.Stories {
		comments := f.fetchComments(ctx, story.ID, kids[i])
		snap.Comments = append(snap.Comments, comments...)
	}

	log.Printf("Fetched %d stories and %d comments", len(snap.Stories), len(snap.Comments))
	return snap, nil
}

// fetchStories retrieves story items concurrently, preserving ranking order.
// Slots of skipped stories stay nil.
func (f *Fetcher) fetchStories(ctx context.Context, ids []int) []*hn.Item {
	items := make([]*hn.Item, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, id := range ids {
		g.Go(func() error {
			item, err := f.client.Item(ctx, id)
			if err != nil {
				log.Printf("Skipping story %d: %v", id, err)
				return nil
			}
			if !validStory(item) {
				log.Printf("Skipping story %d: not a usable story record", id)
				return nil
			}
			items[i] = item
			return nil
		})
	}
	g.Wait()

	return items
}

// fetchComments retrieves the direct comments of one story concurrently,
// preserving the kid-list order.
func (f *Fetcher) fetchComments(ctx context.Context, storyID int, kids []int) []models.Comment {
	items := make([]*hn.Item, len(kids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, id := range kids {
		g.Go(func() error {
			item, err := f.client.Item(ctx, id)
			if err != nil {
				log.Printf("Skipping comment %d on story %d: %v", id, storyID, err)
				return nil
			}
			if !validComment(item) {
				log.Printf("Skipping comment %d on story %d: not a usable comment record", id, storyID)
				return nil
			}
			items[i] = item
			return nil
		})
	}
	g.Wait()

	var comments []models.Comment
	for _, item := range items {
		if item == nil {
			continue
		}
		comments = append(comments, models.Comment{
			ID:      item.ID,
			StoryID: storyID,
			Author:  item.By,
			Text:    html.UnescapeString(item.Text),
			Time:    time.Unix(item.Time, 0).UTC(),
		})
	}
	return comments
}

func storyFromItem(item *hn.Item) models.Story {
	return models.Story{
		ID:          item.ID,
		Title:       item.Title,
		URL:         item.URL,
		Score:       item.Score,
		Author:      item.By,
		Time:        time.Unix(item.Time, 0).UTC(),
		NumComments: len(item.Kids),
	}
}

// validStory enforces the fetch-boundary schema: malformed upstream records
// are skipped rather than carried into the snapshot.
func validStory(item *hn.Item) bool {
	if item.Deleted || item.Dead {
		return false
	}
	if item.Type != "story" && item.Type != "job" {
		return false
	}
	return item.ID != 0 && item.Title != "" && item.By != ""
}

func validComment(item *hn.Item) bool {
	if item.Deleted || item.Dead {
		return false
	}
	if item.Type != "comment" {
		return false
	}
	return item.ID != 0 && (item.By != "" || item.Text != "")
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
