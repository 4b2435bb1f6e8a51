package charts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkilaker/embers/internal/analyzer"
	"github.com/tkilaker/embers/internal/models"
)

var chartFiles = []string{
	"scores.png",
	"comment_counts.png",
	"keyword_frequency.png",
	"posting_times.png",
	"link_distribution.png",
	"sentiment_distribution.png",
	"score_comments_correlation.png",
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	stories := []models.Story{
		{ID: 1, Title: "A short title", Score: 10, NumComments: 2, Time: now.Add(-time.Hour)},
		{ID: 2, Title: "A much longer title that needs truncating for the axis", Score: 30, NumComments: 6, Time: now.Add(-2 * time.Hour), URL: "https://example.com"},
	}
	comments := []models.Comment{
		{ID: 10, StoryID: 1, Text: "great stuff", Time: now},
	}
	report := analyzer.Analyze(stories, comments, now)

	RenderAll(dir, stories, report)

	for _, name := range chartFiles {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "expected chart %s", name)
		assert.Positive(t, info.Size(), "chart %s must not be empty", name)
	}
}

func TestRenderAllEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	report := analyzer.Analyze(nil, nil, time.Now())

	RenderAll(dir, nil, report)

	// Empty data degrades to empty charts, never missing files.
	for _, name := range chartFiles {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected chart %s", name)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 16))
	assert.Equal(t, "exactly-sixteen!", truncate("exactly-sixteen!", 16))
	assert.Equal(t, "this title is re…", truncate("this title is really long", 16))
}
