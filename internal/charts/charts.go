package charts

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tkilaker/embers/internal/analyzer"
	"github.com/tkilaker/embers/internal/models"
)

// RenderAll renders every snapshot chart into dir. A failed chart is
// logged and skipped so one bad render never loses the rest.
func RenderAll(dir string, stories []models.Story, report *analyzer.Report) {
	render := func(name string, fn func(string) error) {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			log.Printf("Skipping chart %s: %v", name, err)
		}
	}

	render("scores.png", func(path string) error {
		return storyBars(path, stories, "Scores of Top Stories", "Score",
			func(s models.Story) float64 { return float64(s.Score) })
	})
	render("comment_counts.png", func(path string) error {
		return storyBars(path, stories, "Comment Counts of Top Stories", "Comments",
			func(s models.Story) float64 { return float64(s.NumComments) })
	})
	render("keyword_frequency.png", func(path string) error {
		return keywordBars(path, report.TopKeywords)
	})
	render("posting_times.png", func(path string) error {
		return postingTimeBars(path, report.PostingHours)
	})
	render("link_distribution.png", func(path string) error {
		return labeledBars(path, "External Links vs Self Posts", "Percent",
			[]string{"external", "self"},
			[]float64{report.ExternalLinkPct, report.SelfPostPct})
	})
	render("sentiment_distribution.png", func(path string) error {
		return labeledBars(path, "Comment Sentiment Distribution", "Comments",
			[]string{"positive", "negative", "neutral"},
			[]float64{
				float64(report.Sentiment.Positive),
				float64(report.Sentiment.Negative),
				float64(report.Sentiment.Neutral),
			})
	})
	render("score_comments_correlation.png", func(path string) error {
		return scoreCommentsScatter(path, stories, report.ScoreCommentsCorrelation)
	})
}

// storyBars renders one bar per story, sorted by value ascending.
func storyBars(path string, stories []models.Story, title, yLabel string, value func(models.Story) float64) error {
	sorted := make([]models.Story, len(stories))
	copy(sorted, stories)
	sort.Slice(sorted, func(i, j int) bool { return value(sorted[i]) < value(sorted[j]) })

	labels := make([]string, len(sorted))
	values := make(plotter.Values, len(sorted))
	for i, s := range sorted {
		labels[i] = truncate(s.Title, 16)
		values[i] = value(s)
	}
	return labeledBars(path, title, yLabel, labels, values)
}

func keywordBars(path string, keywords []analyzer.KeywordCount) error {
	labels := make([]string, len(keywords))
	values := make([]float64, len(keywords))
	for i, kw := range keywords {
		labels[i] = kw.Keyword
		values[i] = float64(kw.Count)
	}
	return labeledBars(path, "Top Keywords in Story Titles", "Frequency", labels, values)
}

func postingTimeBars(path string, hours [24]int) error {
	labels := make([]string, len(hours))
	values := make([]float64, len(hours))
	for h, count := range hours {
		labels[h] = fmt.Sprintf("%02d", h)
		values[h] = float64(count)
	}
	return labeledBars(path, "Story Posting Times (UTC)", "Stories", labels, values)
}

func scoreCommentsScatter(path string, stories []models.Story, correlation float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Score vs Comments (correlation %.2f)", correlation)
	p.X.Label.Text = "Score"
	p.Y.Label.Text = "Comments"

	if len(stories) > 0 {
		xys := make(plotter.XYs, len(stories))
		for i, s := range stories {
			xys[i].X = float64(s.Score)
			xys[i].Y = float64(s.NumComments)
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build scatter: %w", err)
		}
		p.Add(scatter)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// labeledBars renders a simple labeled bar chart. Empty data produces an
// empty chart rather than an error.
func labeledBars(path, title, yLabel string, labels []string, values plotter.Values) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return fmt.Errorf("failed to build bars: %w", err)
		}
		p.Add(bars)
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = 0.9
		p.X.Tick.Label.XAlign = -0.9
	}

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
