package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkilaker/embers/internal/models"
)

func TestStoriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	stories := []models.Story{
		{
			ID:          101,
			Title:       `Go 1.23 released, with "generics, again"`,
			URL:         "https://go.dev/blog",
			Score:       512,
			Author:      "gopher",
			Time:        time.Unix(1700000000, 0).UTC(),
			NumComments: 3,
		},
		{
			ID:     102,
			Title:  "Ask HN: commas, quotes\nand newlines?",
			Score:  1,
			Author: "asker",
			Time:   time.Unix(1700003600, 0).UTC(),
		},
	}

	require.NoError(t, WriteStories(dir, stories))

	got, err := ReadStories(dir)
	require.NoError(t, err)
	assert.Equal(t, stories, got)
}

func TestCommentsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	comments := []models.Comment{
		{ID: 201, StoryID: 101, Author: "a", Text: "plain text", Time: time.Unix(1700000100, 0).UTC()},
		{ID: 202, StoryID: 101, Author: "b", Text: "escaped, \"quoted\"\ntext", Time: time.Unix(1700000200, 0).UTC()},
	}

	require.NoError(t, WriteComments(dir, comments))

	got, err := ReadComments(dir)
	require.NoError(t, err)
	assert.Equal(t, comments, got)
}

func TestWriteEmptyTables(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteStories(dir, nil))
	require.NoError(t, WriteComments(dir, nil))

	stories, err := ReadStories(dir)
	require.NoError(t, err)
	assert.Empty(t, stories)

	comments, err := ReadComments(dir)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Header rows are always present even with no data.
	data, err := os.ReadFile(filepath.Join(dir, StoriesFile))
	require.NoError(t, err)
	assert.Equal(t, "id,title,url,score,author,time,num_comments", strings.TrimSpace(string(data)))

	data, err = os.ReadFile(filepath.Join(dir, CommentsFile))
	require.NoError(t, err)
	assert.Equal(t, "id,story_id,author,text,time", strings.TrimSpace(string(data)))
}

func TestWriteOverwritesPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	first := []models.Story{{ID: 1, Title: "old", Author: "a", Time: time.Unix(0, 0).UTC()}}
	second := []models.Story{{ID: 2, Title: "new", Author: "b", Time: time.Unix(1, 0).UTC()}}

	require.NoError(t, WriteStories(dir, first))
	require.NoError(t, WriteStories(dir, second))

	got, err := ReadStories(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadStories(t.TempDir())
	assert.Error(t, err)
}
