package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seocompetitor/internal/config"
)

func TestAnalyzeCmd_WritesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`<title>Spine Clinic</title><meta name="description" content="Hyderabad spine care">`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "seo", "competitors.json")
	cfg := &config.Config{
		Competitors:    []string{srv.URL + "/", srv.URL + "/down"},
		Keywords:       config.DefaultKeywords,
		UserAgent:      config.DefaultUserAgent,
		RequestTimeout: 5 * time.Second,
		LogLevel:       "error",
	}

	cmd := newAnalyzeCmd(cfg)
	cmd.SetArgs([]string{out})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Spine Clinic", got[0]["title"])
	assert.Equal(t, []any{"spine", "hyderabad"}, got[0]["keywords"])
	assert.Equal(t, "HTTP 503", got[1]["error"])
}
