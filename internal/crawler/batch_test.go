package crawler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seocompetitor/internal/crawler"
	"seocompetitor/internal/logger"
)

type stubFetcher struct {
	pages    map[string]string
	errs     map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)

	if err, ok := s.errs[url]; ok {
		return "", err
	}
	return s.pages[url], nil
}

type recordedFetch struct {
	outcome string
}

type stubRecorder struct {
	mu      sync.Mutex
	fetches []recordedFetch
	hits    map[string]int
}

func (r *stubRecorder) ObserveFetch(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, recordedFetch{outcome: outcome})
}

func (r *stubRecorder) ObserveKeywordHits(url string, hits int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hits == nil {
		r.hits = map[string]int{}
	}
	r.hits[url] = hits
}

func (r *stubRecorder) count(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.fetches {
		if f.outcome == outcome {
			n++
		}
	}
	return n
}

var fixedNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func TestAnalyzeAll_PreservesOrderAndCapturesErrors(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		pages: map[string]string{
			"https://a.example": `<title>A</title><meta name="description" content="Spine">`,
			"https://c.example": `<title>C</title>`,
		},
		errs: map[string]error{
			"https://b.example": &crawler.StatusError{Code: 500},
			"https://d.example": errors.New("dial tcp: lookup d.example: no such host"),
		},
		delay: 5 * time.Millisecond,
	}
	rec := &stubRecorder{}

	a := crawler.NewAnalyzer(fetcher, testKeywords, logger.NewNop(),
		crawler.WithRecorder(rec),
		crawler.WithClock(func() time.Time { return fixedNow }),
	)

	urls := []string{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}
	reports := a.AnalyzeAll(context.Background(), urls)

	require.Len(t, reports, len(urls))
	for i, u := range urls {
		assert.Equal(t, u, reports[i].URL)
	}

	assert.Equal(t, "A", reports[0].Title)
	assert.Equal(t, "Spine", reports[0].Description)
	assert.Equal(t, []string{"spine"}, reports[0].Keywords)
	assert.Equal(t, fixedNow, reports[0].AnalyzedAt)
	assert.False(t, reports[0].Failed())

	assert.Equal(t, "HTTP 500", reports[1].Error)
	assert.Equal(t, []string{}, reports[1].Keywords)

	assert.Equal(t, []string{}, reports[2].Keywords)
	assert.Empty(t, reports[2].Error)

	assert.Equal(t, "dial tcp: lookup d.example: no such host", reports[3].Error)

	assert.Equal(t, 2, rec.count(crawler.OutcomeOK))
	assert.Equal(t, 1, rec.count(crawler.OutcomeHTTPError))
	assert.Equal(t, 1, rec.count(crawler.OutcomeNetworkError))
	assert.Equal(t, 1, rec.hits["https://a.example"])
}

func TestAnalyzeAll_RespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{delay: 20 * time.Millisecond}
	a := crawler.NewAnalyzer(fetcher, testKeywords, logger.NewNop(), crawler.WithConcurrency(2))

	urls := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	reports := a.AnalyzeAll(context.Background(), urls)

	require.Len(t, reports, len(urls))
	assert.LessOrEqual(t, fetcher.peak.Load(), int32(2))
}

func TestAnalyzeAll_Unbounded(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{delay: 50 * time.Millisecond}
	a := crawler.NewAnalyzer(fetcher, testKeywords, logger.NewNop())

	reports := a.AnalyzeAll(context.Background(), []string{"u1", "u2", "u3", "u4"})

	require.Len(t, reports, 4)
	assert.Equal(t, int32(4), fetcher.peak.Load())
}

func TestAnalyzeAll_Empty(t *testing.T) {
	t.Parallel()

	a := crawler.NewAnalyzer(&stubFetcher{}, testKeywords, logger.NewNop())

	assert.Empty(t, a.AnalyzeAll(context.Background(), nil))
}

func TestAnalyzeAll_TimeoutDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = w.Write([]byte("<title>Spine Surgery</title>"))
	}))
	defer srv.Close()

	a := crawler.NewAnalyzer(crawler.NewFetcher(100*time.Millisecond, testUserAgent), testKeywords, logger.NewNop())

	reports := a.AnalyzeAll(context.Background(), []string{srv.URL + "/slow", srv.URL + "/fast"})

	require.Len(t, reports, 2)
	assert.True(t, reports[0].Failed())
	assert.Contains(t, reports[0].Error, "Client.Timeout")
	assert.Equal(t, []string{}, reports[0].Keywords)
	assert.False(t, reports[1].Failed())
	assert.Equal(t, "Spine Surgery", reports[1].Title)
	assert.Equal(t, []string{"spine", "surgery"}, reports[1].Keywords)
}
