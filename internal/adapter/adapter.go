// Package adapter fetches raw content from each external job source and
// extracts canonical Job records. Every adapter contains its own failures:
// ordinary network and format problems are logged with a classified cause
// and degrade to an empty result, never an error across the boundary.
package adapter

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/roleradar/roleradar/internal/model"
)

// Source display names. This is the fixed enumeration used for the Job
// Source field, rate-limit keys, and health probing.
const (
	SourceSeek           = "Seek"
	SourceIndeed         = "Indeed"
	SourceJora           = "Jora"
	SourceCareerOne      = "CareerOne"
	SourceLinkedIn       = "LinkedIn"
	SourceGradConnection = "GradConnection"
	SourceAdzuna         = "Adzuna"
)

// AllSources returns the fixed source enumeration in presentation order.
func AllSources() []string {
	return []string{
		SourceSeek,
		SourceIndeed,
		SourceJora,
		SourceCareerOne,
		SourceLinkedIn,
		SourceGradConnection,
		SourceAdzuna,
	}
}

const (
	// DefaultRegion is used when the caller supplies no location hint and
	// when a source omits a job's location.
	DefaultRegion = "Australia"

	companyUnknown = "Unknown"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// setBrowserHeaders makes the request look like an ordinary browser visit.
// Brotli is deliberately left out of Accept-Encoding; the stdlib transport
// only decompresses gzip transparently.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or
// unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// truncate caps s at max bytes. Descriptions are bounded at capture time.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// absoluteURL resolves href against base when it is site-relative.
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// orDefault returns s, or def when s is empty after trimming.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// drainBody reads and closes an HTTP response body.
func drainBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// classifyFetchError maps a fetch error onto the failure taxonomy for
// logging: a non-2xx response is a block (the source answered and said
// no), anything else is transport.
func classifyFetchError(source string, err error) error {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return &model.BlockedError{Source: source, StatusCode: httpErr.StatusCode}
	}
	return &model.TransportError{Source: source, Err: err}
}
