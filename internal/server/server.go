package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tkilaker/embers/internal/analyzer"
	"github.com/tkilaker/embers/internal/report"
	"github.com/tkilaker/embers/internal/storage"
)

// Server publishes the latest snapshot directory over HTTP. It is
// read-only: the batch job produces the files, the server just serves them.
type Server struct {
	router    *chi.Mux
	outputDir string
}

// New creates a server over the given snapshot directory.
func New(outputDir string) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		outputDir: outputDir,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// Routes
	s.router.Get("/stories.json", s.handleStories)
	s.router.Get("/comments.json", s.handleComments)
	s.router.Get("/stats.csv", s.handleStats)
	s.router.Get("/rss.xml", s.handleRSS)
	s.router.Get("/charts/{name}", s.handleChart)

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Router returns the Chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleStories serves the stories table of the latest snapshot as JSON.
func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	stories, err := storage.ReadStories(s.outputDir)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read stories: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stories)
}

// handleComments serves the comments table of the latest snapshot as JSON.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	comments, err := storage.ReadComments(s.outputDir)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read comments: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, comments)
}

// handleStats serves the results table of the latest snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(s.outputDir, analyzer.ReportFile))
}

// handleRSS serves the RSS snapshot written by the batch job.
func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(s.outputDir, report.FeedFile))
}

// handleChart serves one rendered chart by file name.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if filepath.Ext(name) != ".png" || name != filepath.Base(name) {
		http.Error(w, "Invalid chart name", http.StatusBadRequest)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.outputDir, name))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
