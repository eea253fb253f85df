package model

import (
	"context"
	"time"
)

// Job is one posting as seen from one source at one point in time.
// All adapters normalize into this shape; no field is mutated after
// construction except through a fresh upsert.
type Job struct {
	Title       string    // required; records without a title never leave the adapter
	Company     string    // "Unknown" when the source omits it
	Location    string    // configured default region when the source omits it
	URL         string    // may be empty — some sources have no stable link
	Source      string    // adapter identity, e.g. "Seek"
	Description string    // free text, capped at capture time (~300-400 chars)
	Salary      string    // "" when not provided
	DatePosted  string    // source-provided, format varies by source, kept opaque
	ScrapedAt   time.Time // capture time, set once at construction
}

// StoredJob is the persisted superset of Job.
type StoredJob struct {
	ID int64 // surrogate key assigned by the store
	Job
	FirstSeen time.Time // set at first successful insert, never updated
}

// ScrapeRun is an immutable audit record of one orchestrator run.
type ScrapeRun struct {
	ID        int64
	RunAt     time.Time
	Roles     string // the role query set, comma-joined
	JobsFound int    // post-match count
	JobsNew   int    // post-dedup insert count
}

// SourceHealth is the result of one reachability probe. Ephemeral —
// recomputed on demand, never persisted.
type SourceHealth struct {
	Online     bool
	LatencyMS  int
	StatusCode int // 0 when no response was received
	Note       string
}

// Searcher fetches jobs for one role query from one external source.
// Implementations contain ordinary network/format failures internally
// (logged, empty result); a non-nil error indicates an unexpected failure
// and callers must isolate it from other sources.
type Searcher interface {
	Search(ctx context.Context, role, location string) ([]Job, error)
}

// TextGenerator is the opaque LLM capability consumed by the external
// scoring component. It relies only on Job's title/company/location/
// description fields.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// DigestSender is the email/export collaborator. It accepts an ordered
// job list and owns all formatting; this core guarantees only field
// presence and defaults.
type DigestSender interface {
	Send(ctx context.Context, jobs []StoredJob) error
}
