package importer

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors classifying every way an import can fail. Handlers map
// these to HTTP statuses with HTTPStatus; callers test them with errors.Is.
var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrScrapeUnavailable = errors.New("scrape unavailable")
	ErrNoContent         = errors.New("no content")
	ErrContentMismatch   = errors.New("content mismatch")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrNoTitleFound      = errors.New("no title found")
	ErrUpstreamBusy      = errors.New("upstream busy")
	ErrPersistence       = errors.New("persistence error")
)

// Wrap tags err with the given marker and stage context so the failure kind
// survives the trip up to the handler.
func Wrap(marker error, stage, message string, err error) error {
	detail := buildDetail(stage, message)
	if marker == nil {
		marker = ErrPersistence
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a pipeline error to the status code the trigger endpoint
// should respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrScrapeUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrNoContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrContentMismatch):
		// fail closed: a blocked or redirected scrape must never import the wrong item
		return http.StatusBadGateway
	case errors.Is(err, ErrExtractionFailed):
		return http.StatusInternalServerError
	case errors.Is(err, ErrNoTitleFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(stage, message string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "import failure"
	}
	return strings.Join(parts, ": ")
}
