package model

import (
	"encoding/json"
	"time"
)

// AnalyzedAtLayout is an ISO-8601 UTC timestamp with millisecond precision.
const AnalyzedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// CompetitorReport is the outcome of analysing one competitor page.
// A report either carries extracted data or an Error, never both.
type CompetitorReport struct {
	URL         string
	Title       string
	Description string
	Keywords    []string
	AnalyzedAt  time.Time
	Insights    string
	Error       string
}

func (r CompetitorReport) Failed() bool {
	return r.Error != ""
}

type successJSON struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	AnalyzedAt  string   `json:"analyzedAt"`
	Insights    string   `json:"insights,omitempty"`
}

type failureJSON struct {
	URL      string   `json:"url"`
	Error    string   `json:"error"`
	Keywords []string `json:"keywords"`
}

// MarshalJSON emits the success shape or the failure shape. Keywords is
// always an array.
func (r CompetitorReport) MarshalJSON() ([]byte, error) {
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	if r.Failed() {
		return json.Marshal(failureJSON{URL: r.URL, Error: r.Error, Keywords: keywords})
	}

	return json.Marshal(successJSON{
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		Keywords:    keywords,
		AnalyzedAt:  r.AnalyzedAt.UTC().Format(AnalyzedAtLayout),
		Insights:    r.Insights,
	})
}

// Snapshot is a stored report row.
type Snapshot struct {
	ID          string     `db:"id"`
	RunID       string     `db:"run_id"`
	URL         string     `db:"url"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Keywords    []string   `db:"keywords"`
	Error       string     `db:"error"`
	AnalyzedAt  *time.Time `db:"analyzed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}
