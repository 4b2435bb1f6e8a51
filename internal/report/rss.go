package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/feeds"

	"github.com/tkilaker/embers/internal/config"
	"github.com/tkilaker/embers/internal/models"
)

// FeedFile is the fixed name of the RSS snapshot written next to the CSVs.
const FeedFile = "rss.xml"

// Feed renders the snapshot stories as an RSS 2.0 feed. excerpts maps story
// IDs to readable-excerpt descriptions and may be nil.
func Feed(stories []models.Story, excerpts map[int]string, cfg *config.Config) (string, error) {
	feed := &feeds.Feed{
		Title:       cfg.FeedTitle,
		Link:        &feeds.Link{Href: cfg.FeedLink},
		Description: cfg.FeedDescription,
		Author:      &feeds.Author{Name: cfg.FeedAuthor},
	}

	feed.Items = make([]*feeds.Item, 0, len(stories))
	for _, story := range stories {
		item := &feeds.Item{
			Title:   story.Title,
			Link:    &feeds.Link{Href: storyLink(story)},
			Id:      fmt.Sprintf("https://news.ycombinator.com/item?id=%d", story.ID),
			Author:  &feeds.Author{Name: story.Author},
			Created: story.Time,
		}
		if excerpt, ok := excerpts[story.ID]; ok {
			item.Description = excerpt
		} else {
			item.Description = fmt.Sprintf("%d points, %d comments", story.Score, story.NumComments)
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}
	return rss, nil
}

// WriteFeed renders the feed and saves it into dir.
func WriteFeed(dir string, stories []models.Story, excerpts map[int]string, cfg *config.Config) error {
	rss, err := Feed(stories, excerpts, cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, FeedFile)
	if err := os.WriteFile(path, []byte(rss), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// storyLink points at the external page, or at the HN discussion for
// self posts.
func storyLink(story models.Story) string {
	if story.URL != "" {
		return story.URL
	}
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", story.ID)
}
