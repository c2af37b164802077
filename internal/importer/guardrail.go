package importer

import (
	"net/url"
	"regexp"
	"strings"
)

// ValidateSourceURL checks the import target before any network call is made.
// Only absolute http/https URLs are accepted.
func ValidateSourceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Wrap(ErrInvalidURL, "guardrail", "url is required", nil)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrInvalidURL, "guardrail", "url does not parse", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return Wrap(ErrInvalidURL, "guardrail", "url must be absolute", nil)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Wrap(ErrInvalidURL, "guardrail", "scheme must be http or https", nil)
	}
	return nil
}

// catalog pages embed a numeric id in the path, e.g. /boardgame/266192/wingspan
var catalogIDPattern = regexp.MustCompile(`/(?:boardgame|boardgameexpansion|item)/(\d+)`)

// CatalogID extracts the numeric catalog identifier from a source URL.
// Returns "" when the URL carries no identifier.
func CatalogID(sourceURL string) string {
	m := catalogIDPattern.FindStringSubmatch(sourceURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// VerifyContentMatch confirms the scraped markdown pertains to the requested
// page. When the source site blocks scraping it tends to serve a generic
// trending page instead; requiring the catalog id (or the literal URL) to
// appear in the markdown rejects those. Best-effort: skipped when the URL
// carries no extractable identifier.
func VerifyContentMatch(sourceURL, markdown string) error {
	id := CatalogID(sourceURL)
	if id == "" {
		return nil
	}
	if strings.Contains(markdown, id) || strings.Contains(markdown, sourceURL) {
		return nil
	}
	return Wrap(ErrContentMismatch, "guardrail", "scraped content does not reference catalog id "+id, nil)
}
