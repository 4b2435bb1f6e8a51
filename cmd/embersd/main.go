package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/tkilaker/embers/internal/config"
	"github.com/tkilaker/embers/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration (.env is optional)
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv := server.New(cfg.OutputDir)
	log.Printf("Serving snapshot directory %s", cfg.OutputDir)

	addr := fmt.Sprintf(":%d", cfg.Port)
	return srv.Start(addr)
}
