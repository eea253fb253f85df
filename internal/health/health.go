// Package health performs lightweight connectivity probes against each
// supported job source, concurrently, so a full check takes roughly as
// long as the slowest single source.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/roleradar/roleradar/internal/adapter"
	"github.com/roleradar/roleradar/internal/model"
)

// sourceURLs maps each source to a cheap URL to ping (homepage or API
// root). CareerOne is absent: its adapter never fetches anything, so
// there is nothing meaningful to probe.
var sourceURLs = map[string]string{
	adapter.SourceSeek:           "https://www.seek.com.au",
	adapter.SourceIndeed:         "https://au.indeed.com",
	adapter.SourceJora:           "https://au.jora.com",
	adapter.SourceLinkedIn:       "https://www.linkedin.com",
	adapter.SourceGradConnection: "https://au.gradconnection.com",
	adapter.SourceAdzuna:         "https://www.adzuna.com.au",
}

const (
	probeTimeout = 10 * time.Second
	maxProbers   = 8
)

// Prober pings source homepages and classifies the responses.
type Prober struct {
	client *http.Client
	logger *slog.Logger
}

// NewProber creates a prober. The client's own timeout is ignored; each
// probe is bounded by its context.
func NewProber(client *http.Client, logger *slog.Logger) *Prober {
	return &Prober{client: client, logger: logger}
}

// ProbeAll checks the given sources concurrently and returns one result
// per source name. It always returns a result for every requested source;
// probe failures are encoded in the result, not returned as errors.
func (p *Prober) ProbeAll(ctx context.Context, sources []string) map[string]model.SourceHealth {
	results := make(map[string]model.SourceHealth, len(sources))
	var mu sync.Mutex

	workers := len(sources)
	if workers > maxProbers {
		workers = maxProbers
	}
	names := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range names {
				h := p.probe(ctx, name)
				mu.Lock()
				results[name] = h
				mu.Unlock()
			}
		}()
	}
	for _, name := range sources {
		names <- name
	}
	close(names)
	wg.Wait()

	return results
}

// probe pings one source and classifies the outcome.
func (p *Prober) probe(ctx context.Context, source string) model.SourceHealth {
	url, ok := sourceURLs[source]
	if !ok {
		return model.SourceHealth{Note: "Unknown source"}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.SourceHealth{Note: truncateNote(err.Error())}
	}
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")

	resp, err := p.client.Do(req)
	latency := int(time.Since(start).Milliseconds())
	if err != nil {
		return model.SourceHealth{LatencyMS: latency, Note: classifyProbeError(err)}
	}
	resp.Body.Close()

	h := model.SourceHealth{Online: true, LatencyMS: latency, StatusCode: resp.StatusCode}
	switch {
	case resp.StatusCode == 999:
		// LinkedIn's bot-detection answer. The site is up.
		h.Note = "Reachable (bot-detection active)"
	case resp.StatusCode < 400:
		h.Note = "OK"
	default:
		// Site is up but the homepage errored.
		h.Note = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	p.logger.Debug("source probed", "source", source,
		"online", h.Online, "status", h.StatusCode, "latency_ms", h.LatencyMS)
	return h
}

func classifyProbeError(err error) string {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout(),
		errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "Connection refused"
	default:
		return truncateNote(err.Error())
	}
}

func truncateNote(s string) string {
	const max = 60
	if len(s) > max {
		return s[:max]
	}
	return s
}
