package database

import (
	"context"
	"fmt"

	"github.com/tkilaker/embers/internal/models"
)

// SaveSnapshot archives one complete run transactionally and returns the
// snapshot row ID.
func (db *DB) SaveSnapshot(ctx context.Context, snap *models.Snapshot) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var snapshotID int
	err = tx.QueryRow(ctx,
		`INSERT INTO snapshots (fetched_at) VALUES ($1) RETURNING id`,
		snap.FetchedAt,
	).Scan(&snapshotID)
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot: %w", err)
	}

	for _, s := range snap.Stories {
		_, err := tx.Exec(ctx, `
			INSERT INTO stories (snapshot_id, id, title, url, score, author, posted_at, num_comments)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, snapshotID, s.ID, s.Title, s.URL, s.Score, s.Author, s.Time, s.NumComments)
		if err != nil {
			return 0, fmt.Errorf("failed to insert story %d: %w", s.ID, err)
		}
	}

	for _, c := range snap.Comments {
		_, err := tx.Exec(ctx, `
			INSERT INTO comments (snapshot_id, id, story_id, author, body, posted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, snapshotID, c.ID, c.StoryID, c.Author, c.Text, c.Time)
		if err != nil {
			return 0, fmt.Errorf("failed to insert comment %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snapshotID, nil
}
