package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkilaker/embers/internal/analyzer"
	"github.com/tkilaker/embers/internal/models"
	"github.com/tkilaker/embers/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	srv := httptest.NewServer(New(dir).Router())
	t.Cleanup(srv.Close)
	return srv, dir
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStoriesJSON(t *testing.T) {
	srv, dir := newTestServer(t)
	stories := []models.Story{{
		ID:     1,
		Title:  "A story",
		Score:  10,
		Author: "alice",
		Time:   time.Unix(1700000000, 0).UTC(),
	}}
	require.NoError(t, storage.WriteStories(dir, stories))

	resp, err := http.Get(srv.URL + "/stories.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Story
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, stories, got)
}

func TestStoriesJSONWithoutSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/stories.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestStatsCSV(t *testing.T) {
	srv, dir := newTestServer(t)
	require.NoError(t, analyzer.WriteReport(dir, analyzer.Analyze(nil, nil, time.Now())))

	resp, err := http.Get(srv.URL + "/stats.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
}

func TestChartNameValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/charts/scores.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/charts/missing.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
