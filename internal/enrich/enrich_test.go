package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tkilaker/embers/internal/models"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
	<title>A readable article</title>
	<meta name="description" content="A concise summary of the article.">
</head>
<body>
	<article>
		<h1>A readable article</h1>
		<p>This is the first paragraph of a fairly long article body. It goes on
		for a while so the readability extractor has enough material to treat it
		as real content instead of boilerplate navigation.</p>
		<p>A second paragraph keeps the extraction honest and provides yet more
		text for the scorer to work with across the whole document.</p>
	</article>
</body>
</html>`

func TestExcerpts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			fmt.Fprint(w, articlePage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	stories := []models.Story{
		{ID: 1, Title: "good", URL: srv.URL + "/ok"},
		{ID: 2, Title: "self post"}, // no URL, skipped
		{ID: 3, Title: "broken", URL: srv.URL + "/missing"},
	}

	e := New(5*time.Second, 2)
	excerpts := e.Excerpts(context.Background(), stories)

	assert.NotEmpty(t, excerpts[1], "reachable page yields an excerpt")
	assert.NotContains(t, excerpts, 2)
	assert.NotContains(t, excerpts, 3, "failed pages are skipped, not fatal")
}

func TestExcerptsEmptyInput(t *testing.T) {
	e := New(time.Second, 2)
	assert.Empty(t, e.Excerpts(context.Background(), nil))
}
