package model

import (
	"fmt"
	"time"
)

// The adapter failure taxonomy. These never cross the adapter boundary as
// returned errors — adapters log them and degrade to an empty result — but
// typed errors keep the log classification honest and let retry logic
// inspect what actually happened.

// ConfigMissingError means a source needs credentials that were not
// supplied. Not a transport failure: the source is skipped, not retried.
type ConfigMissingError struct {
	Source string
	Detail string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("%s: configuration missing: %s", e.Source, e.Detail)
}

// TransportError is a connection or timeout failure before any payload
// was received.
type TransportError struct {
	Source string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BlockedError is a non-2xx response indicating active rejection —
// distinct from TransportError so operators can tell "down" from
// "blocking us".
type BlockedError struct {
	Source     string
	StatusCode int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: blocked: HTTP %d", e.Source, e.StatusCode)
}

// FormatError means a payload arrived but no extractable structure was
// found in it — usually a layout or schema change on the source side.
type FormatError struct {
	Source string
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: format: %s", e.Source, e.Detail)
}

// EmptyResultError means extraction ran cleanly but produced zero
// candidates. Kept distinct from FormatError to aid diagnosis: an empty
// search is normal, an unparseable page is not.
type EmptyResultError struct {
	Source string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: no results", e.Source)
}

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return e.Err }
