package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tkilaker/embers/internal/models"
)

// Fixed snapshot filenames.
const (
	StoriesFile  = "top_stories.csv"
	CommentsFile = "comments.csv"
)

var storiesHeader = []string{"id", "title", "url", "score", "author", "time", "num_comments"}
var commentsHeader = []string{"id", "story_id", "author", "text", "time"}

// WriteStories writes the stories table into dir, overwriting any previous
// snapshot. Timestamps are serialized as unix seconds.
func WriteStories(dir string, stories []models.Story) error {
	rows := make([][]string, 0, len(stories))
	for _, s := range stories {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Title,
			s.URL,
			strconv.Itoa(s.Score),
			s.Author,
			strconv.FormatInt(s.Time.Unix(), 10),
			strconv.Itoa(s.NumComments),
		})
	}
	return writeTable(filepath.Join(dir, StoriesFile), storiesHeader, rows)
}

// WriteComments writes the comments table into dir.
func WriteComments(dir string, comments []models.Comment) error {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.StoryID),
			c.Author,
			c.Text,
			strconv.FormatInt(c.Time.Unix(), 10),
		})
	}
	return writeTable(filepath.Join(dir, CommentsFile), commentsHeader, rows)
}

// ReadStories reads a stories table previously written by WriteStories.
func ReadStories(dir string) ([]models.Story, error) {
	rows, err := readTable(filepath.Join(dir, StoriesFile), len(storiesHeader))
	if err != nil {
		return nil, err
	}

	stories := make([]models.Story, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid story id %q: %w", row[0], err)
		}
		score, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("invalid score for story %d: %w", id, err)
		}
		ts, err := strconv.ParseInt(row[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time for story %d: %w", id, err)
		}
		numComments, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, fmt.Errorf("invalid num_comments for story %d: %w", id, err)
		}
		stories = append(stories, models.Story{
			ID:          id,
			Title:       row[1],
			URL:         row[2],
			Score:       score,
			Author:      row[4],
			Time:        time.Unix(ts, 0).UTC(),
			NumComments: numComments,
		})
	}
	return stories, nil
}

// ReadComments reads a comments table previously written by WriteComments.
func ReadComments(dir string) ([]models.Comment, error) {
	rows, err := readTable(filepath.Join(dir, CommentsFile), len(commentsHeader))
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid comment id %q: %w", row[0], err)
		}
		storyID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("invalid story_id for comment %d: %w", id, err)
		}
		ts, err := strconv.ParseInt(row[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time for comment %d: %w", id, err)
		}
		comments = append(comments, models.Comment{
			ID:      id,
			StoryID: storyID,
			Author:  row[2],
			Text:    row[3],
			Time:    time.Unix(ts, 0).UTC(),
		})
	}
	return comments, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return f.Close()
}

func readTable(path string, columns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is missing its header row", path)
	}
	return records[1:], nil
}
