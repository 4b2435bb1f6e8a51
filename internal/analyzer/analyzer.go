package analyzer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/tkilaker/embers/internal/models"
)

// ReportFile is the fixed name of the results table.
const ReportFile = "statistical_analysis.csv"

// KeywordCount is one entry of the title keyword frequency table.
type KeywordCount struct {
	Keyword string
	Count   int
}

// SentimentCounts buckets comments by polarity sign.
type SentimentCounts struct {
	Positive int
	Negative int
	Neutral  int
}

// Report holds the descriptive statistics derived from one snapshot.
// All values degrade to zero when the underlying data is empty.
type Report struct {
	StoryCount   int
	CommentCount int

	AverageScore    float64
	MedianScore     float64
	AverageComments float64

	TopKeywords         []KeywordCount
	AverageHoursOnFront float64
	ExternalLinkPct     float64
	SelfPostPct         float64

	// Stories posted per hour of day, UTC.
	PostingHours [24]int

	AverageCommentLength float64
	MedianCommentLength  float64
	CommentsWithLinksPct float64
	Sentiment            SentimentCounts

	ScoreCommentsCorrelation float64
}

// Analyze computes the full report for a snapshot. now anchors the
// time-on-front-page metric.
func Analyze(stories []models.Story, comments []models.Comment, now time.Time) *Report {
	r := &Report{
		StoryCount:   len(stories),
		CommentCount: len(comments),
	}

	scores := make([]float64, 0, len(stories))
	counts := make([]float64, 0, len(stories))
	titles := make([]string, 0, len(stories))
	external := 0
	var ageHours []float64
	for _, s := range stories {
		scores = append(scores, float64(s.Score))
		counts = append(counts, float64(s.NumComments))
		titles = append(titles, s.Title)
		ageHours = append(ageHours, now.Sub(s.Time).Hours())
		if s.URL != "" {
			external++
		}
		r.PostingHours[s.Time.UTC().Hour()]++
	}

	r.AverageScore = mean(scores)
	r.MedianScore = median(scores)
	r.AverageComments = mean(counts)
	r.AverageHoursOnFront = mean(ageHours)
	r.TopKeywords = TopKeywords(titles, 10)
	if len(stories) > 0 {
		r.ExternalLinkPct = 100 * float64(external) / float64(len(stories))
		r.SelfPostPct = 100 - r.ExternalLinkPct
	}
	r.ScoreCommentsCorrelation = correlation(scores, counts)

	lengths := make([]float64, 0, len(comments))
	withLinks := 0
	for _, c := range comments {
		text := PlainText(c.Text)
		lengths = append(lengths, float64(len(text)))
		if strings.Contains(c.Text, "http") {
			withLinks++
		}
		switch compound := Polarity(text); {
		case compound > 0:
			r.Sentiment.Positive++
		case compound < 0:
			r.Sentiment.Negative++
		default:
			r.Sentiment.Neutral++
		}
	}
	r.AverageCommentLength = mean(lengths)
	r.MedianCommentLength = median(lengths)
	if len(comments) > 0 {
		r.CommentsWithLinksPct = 100 * float64(withLinks) / float64(len(comments))
	}

	return r
}

// WriteReport saves the results table as metric,value rows. Distributions
// are flattened into "name - key" rows.
func WriteReport(dir string, r *Report) error {
	path := filepath.Join(dir, ReportFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"story_count", fmt.Sprintf("%d", r.StoryCount)},
		{"comment_count", fmt.Sprintf("%d", r.CommentCount)},
		{"average_score", fmt.Sprintf("%.2f", r.AverageScore)},
		{"median_score", fmt.Sprintf("%.2f", r.MedianScore)},
		{"average_comments_count", fmt.Sprintf("%.2f", r.AverageComments)},
		{"average_hours_on_front", fmt.Sprintf("%.2f", r.AverageHoursOnFront)},
		{"external_links_percentage", fmt.Sprintf("%.2f", r.ExternalLinkPct)},
		{"self_posts_percentage", fmt.Sprintf("%.2f", r.SelfPostPct)},
		{"average_comment_length", fmt.Sprintf("%.2f", r.AverageCommentLength)},
		{"median_comment_length", fmt.Sprintf("%.2f", r.MedianCommentLength)},
		{"comments_with_links_percentage", fmt.Sprintf("%.2f", r.CommentsWithLinksPct)},
		{"score_comments_correlation", fmt.Sprintf("%.2f", r.ScoreCommentsCorrelation)},
		{"sentiment_distribution - positive", fmt.Sprintf("%d", r.Sentiment.Positive)},
		{"sentiment_distribution - negative", fmt.Sprintf("%d", r.Sentiment.Negative)},
		{"sentiment_distribution - neutral", fmt.Sprintf("%d", r.Sentiment.Neutral)},
	}
	for _, kw := range r.TopKeywords {
		rows = append(rows, []string{
			fmt.Sprintf("top_10_keywords - %s", kw.Keyword),
			fmt.Sprintf("%d", kw.Count),
		})
	}
	for hour, count := range r.PostingHours {
		rows = append(rows, []string{
			fmt.Sprintf("posting_time_distribution - %02d", hour),
			fmt.Sprintf("%d", count),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

// mean, median and correlation wrap the stats package and degrade to zero
// on empty or degenerate input instead of propagating an error.
func mean(vals []float64) float64 {
	v, err := stats.Mean(stats.Float64Data(vals))
	if err != nil {
		return 0
	}
	return v
}

func median(vals []float64) float64 {
	v, err := stats.Median(stats.Float64Data(vals))
	if err != nil {
		return 0
	}
	return v
}

func correlation(a, b []float64) float64 {
	v, err := stats.Correlation(stats.Float64Data(a), stats.Float64Data(b))
	if err != nil {
		return 0
	}
	return v
}
