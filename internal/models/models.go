package models

import "time"

// Story is one front-page story captured in a snapshot.
type Story struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url,omitempty"` // empty for self posts
	Score       int       `json:"score"`
	Author      string    `json:"author"`
	Time        time.Time `json:"time"`
	NumComments int       `json:"num_comments"` // direct (top-level) comments
}

// Comment is one top-level comment attached to a snapshot story.
type Comment struct {
	ID      int       `json:"id"`
	StoryID int       `json:"story_id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
}

// Snapshot holds everything collected by a single run. Stories keep the
// upstream ranking order; comments carry no cross-story order.
type Snapshot struct {
	Stories   []Story
	Comments  []Comment
	FetchedAt time.Time
}
