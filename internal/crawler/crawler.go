package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const (
	maxBodySize = 10 << 20
	sniffSize   = 1024
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// PageFetcher returns the HTML of a single page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Fetcher issues one GET per page with a fixed User-Agent.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads url and returns its body decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body from %s: %w", url, err)
	}

	html, err := decodeBody(b, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode body from %s: %w", url, err)
	}
	return html, nil
}

// decodeBody returns b as UTF-8. Valid UTF-8 is kept as is. Otherwise the
// declared or sniffed charset is used, unless the sniff was a guess made on
// a pure ASCII prefix, in which case invalid bytes are replaced.
func decodeBody(b []byte, contentType string) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}

	prefix := b[:min(len(b), sniffSize)]
	enc, _, certain := charset.DetermineEncoding(prefix, contentType)
	if !certain && !hasHighBit(prefix) {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), nil
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasHighBit(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
