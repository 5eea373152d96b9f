package crawler

import (
	"regexp"
	"strings"
)

var (
	titleRe       = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	descriptionRe = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']+)["']`)
)

// PageData holds what is extracted from one page.
type PageData struct {
	Title       string
	Description string
	Keywords    []string
}

// ParsePage extracts the title, meta description and keyword hits from raw
// HTML using pattern matching only.
func ParsePage(html string, keywords []string) PageData {
	return PageData{
		Title:       ExtractTitle(html),
		Description: ExtractDescription(html),
		Keywords:    MatchKeywords(html, keywords),
	}
}

func ExtractTitle(html string) string {
	return firstGroup(titleRe, html)
}

// ExtractDescription only matches when the name attribute precedes content.
func ExtractDescription(html string) string {
	return firstGroup(descriptionRe, html)
}

// MatchKeywords reports every keyword occurring anywhere in the lower-cased
// HTML, in keyword order and without duplicates. The result is never nil.
func MatchKeywords(html string, keywords []string) []string {
	text := strings.ToLower(html)
	seen := make(map[string]struct{}, len(keywords))
	hits := []string{}

	for _, kw := range keywords {
		term := strings.ToLower(kw)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		if strings.Contains(text, term) {
			seen[term] = struct{}{}
			hits = append(hits, term)
		}
	}
	return hits
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
