// Package search runs a scrape across every enabled source and collects
// the per-source outcomes. A run is fault-isolated: one source failing,
// hanging up, or even panicking never takes down the others.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roleradar/roleradar/internal/model"
	"github.com/roleradar/roleradar/internal/ratelimit"
)

// Outcome is one source's contribution to a run, for the run report.
type Outcome struct {
	Source    string
	JobsFound int
	Err       error
}

// namedSearcher pairs a searcher with its display name so outcomes can be
// reported even when the searcher yields nothing.
type namedSearcher struct {
	name     string
	searcher model.Searcher
}

// Orchestrator fans a set of roles out across the enabled sources in a
// fixed order, spacing requests with the per-source rate limiter.
type Orchestrator struct {
	sources []namedSearcher
	limiter *ratelimit.SourceRateLimiter
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator. Sources run in the order they
// are added.
func NewOrchestrator(limiter *ratelimit.SourceRateLimiter, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{limiter: limiter, logger: logger}
}

// Add registers a source under its display name.
func (o *Orchestrator) Add(name string, s model.Searcher) {
	o.sources = append(o.sources, namedSearcher{name: name, searcher: s})
}

// Run searches every source for every role and returns the raw, unmatched
// aggregate plus one outcome per source. The only error it returns is
// context cancellation; source-level failures are folded into outcomes.
func (o *Orchestrator) Run(ctx context.Context, roles []string, location string) ([]model.Job, []Outcome, error) {
	start := time.Now()
	var all []model.Job
	outcomes := make([]Outcome, 0, len(o.sources))

	for _, src := range o.sources {
		outcome := Outcome{Source: src.name}
		for _, role := range roles {
			if err := o.limiter.Wait(ctx, src.name); err != nil {
				return nil, nil, err
			}
			jobs, err := o.searchOne(ctx, src, role, location)
			if err != nil {
				if ctx.Err() != nil {
					return nil, nil, ctx.Err()
				}
				outcome.Err = err
				continue
			}
			outcome.JobsFound += len(jobs)
			all = append(all, jobs...)
		}
		outcomes = append(outcomes, outcome)
		o.logger.Debug("source finished", "source", src.name,
			"jobs", outcome.JobsFound, "error", outcome.Err)
	}

	o.logger.Info("scrape run finished",
		"sources", len(o.sources), "roles", len(roles),
		"jobs", len(all), "elapsed", time.Since(start).Round(time.Millisecond))
	return all, outcomes, nil
}

// searchOne calls a single source for a single role, converting a panic
// into an error so a buggy adapter stays contained.
func (o *Orchestrator) searchOne(ctx context.Context, src namedSearcher, role, location string) (jobs []model.Job, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", src.name, r)
		}
	}()
	return src.searcher.Search(ctx, role, location)
}

// Describe renders an outcome error for the run report, capped so a long
// chain of wrapped causes doesn't wreck the table layout.
func (out Outcome) Describe() string {
	if out.Err == nil {
		return ""
	}
	msg := out.Err.Error()
	const max = 80
	if len(msg) > max {
		return msg[:max] + "…"
	}
	return msg
}
