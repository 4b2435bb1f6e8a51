package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tkilaker/embers/internal/analyzer"
	"github.com/tkilaker/embers/internal/charts"
	"github.com/tkilaker/embers/internal/config"
	"github.com/tkilaker/embers/internal/database"
	"github.com/tkilaker/embers/internal/enrich"
	"github.com/tkilaker/embers/internal/fetcher"
	"github.com/tkilaker/embers/internal/hn"
	"github.com/tkilaker/embers/internal/models"
	"github.com/tkilaker/embers/internal/report"
	"github.com/tkilaker/embers/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration (.env is optional)
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Starting Embers snapshot of the top %d stories...", cfg.TopStories)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Collect the snapshot
	client := hn.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	snap, err := fetcher.New(client, cfg.FetchWorkers).Fetch(ctx, cfg.TopStories)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	// Persist the tables
	if err := storage.WriteStories(cfg.OutputDir, snap.Stories); err != nil {
		return fmt.Errorf("failed to write stories: %w", err)
	}
	if err := storage.WriteComments(cfg.OutputDir, snap.Comments); err != nil {
		return fmt.Errorf("failed to write comments: %w", err)
	}
	log.Printf("Wrote %s and %s to %s", storage.StoriesFile, storage.CommentsFile, cfg.OutputDir)

	// Archive to Postgres when configured; the CSVs stay authoritative
	if cfg.DatabaseURL != "" {
		if err := archive(ctx, cfg.DatabaseURL, snap); err != nil {
			log.Printf("Skipping database archive: %v", err)
		}
	}

	// Analyze
	rep := analyzer.Analyze(snap.Stories, snap.Comments, snap.FetchedAt)
	if err := analyzer.WriteReport(cfg.OutputDir, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Printf("Average score %.2f, average comments %.2f", rep.AverageScore, rep.AverageComments)

	// Render charts
	charts.RenderAll(cfg.OutputDir, snap.Stories, rep)

	// Publish the RSS snapshot
	var excerpts map[int]string
	if cfg.FetchExcerpts {
		excerpts = enrich.New(cfg.HTTPTimeout, cfg.FetchWorkers).Excerpts(ctx, snap.Stories)
		log.Printf("Extracted %d excerpts", len(excerpts))
	}
	if err := report.WriteFeed(cfg.OutputDir, snap.Stories, excerpts, cfg); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	log.Printf("Snapshot complete in %s", time.Since(snap.FetchedAt).Round(time.Millisecond))
	return nil
}

// archive saves the snapshot into Postgres. Failures are reported to the
// caller but never abort the run.
func archive(ctx context.Context, databaseURL string, snap *models.Snapshot) error {
	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return err
	}

	id, err := db.SaveSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	log.Printf("Archived snapshot %d to database", id)
	return nil
}
