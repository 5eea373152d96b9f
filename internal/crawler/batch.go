package crawler

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"seocompetitor/internal/logger"
	"seocompetitor/internal/model"
)

const (
	OutcomeOK           = "ok"
	OutcomeHTTPError    = "http_error"
	OutcomeNetworkError = "network_error"
)

// Recorder receives per-page measurements.
type Recorder interface {
	ObserveFetch(outcome string, elapsed time.Duration)
	ObserveKeywordHits(url string, hits int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, time.Duration) {}
func (nopRecorder) ObserveKeywordHits(string, int)     {}

// Analyzer fetches competitor pages and turns each into a report.
type Analyzer struct {
	fetcher     PageFetcher
	keywords    []string
	concurrency int
	recorder    Recorder
	now         func() time.Time
	log         logger.Logger
}

type Option func(*Analyzer)

// WithConcurrency caps the number of in-flight fetches. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) { a.concurrency = n }
}

func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func NewAnalyzer(fetcher PageFetcher, keywords []string, log logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:  fetcher,
		keywords: keywords,
		recorder: nopRecorder{},
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeAll analyses every url in parallel and returns one report per url in
// input order. Individual failures end up in the report, never as an error.
func (a *Analyzer) AnalyzeAll(ctx context.Context, urls []string) []model.CompetitorReport {
	reports := make([]model.CompetitorReport, len(urls))

	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			reports[i] = a.Analyze(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// Analyze fetches and parses a single page.
func (a *Analyzer) Analyze(ctx context.Context, url string) model.CompetitorReport {
	start := time.Now()
	html, err := a.fetcher.Fetch(ctx, url)
	elapsed := time.Since(start)

	if err != nil {
		a.recorder.ObserveFetch(outcome(err), elapsed)
		a.log.Warn("competitor fetch failed",
			logger.String("url", url),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
		return model.CompetitorReport{URL: url, Error: err.Error(), Keywords: []string{}}
	}

	page := ParsePage(html, a.keywords)
	a.recorder.ObserveFetch(OutcomeOK, elapsed)
	a.recorder.ObserveKeywordHits(url, len(page.Keywords))
	a.log.Debug("competitor analysed",
		logger.String("url", url),
		logger.Duration("elapsed", elapsed),
		logger.Strings("keywords", page.Keywords),
	)

	return model.CompetitorReport{
		URL:         url,
		Title:       page.Title,
		Description: page.Description,
		Keywords:    page.Keywords,
		AnalyzedAt:  a.now(),
	}
}

func outcome(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return OutcomeHTTPError
	}
	return OutcomeNetworkError
}
