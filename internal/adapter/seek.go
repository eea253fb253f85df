package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/roleradar/roleradar/internal/model"
	"github.com/roleradar/roleradar/internal/retry"
)

const (
	seekAPIURL = "https://www.seek.com.au/api/jobsearch/v5/search"
	seekJobURL = "https://www.seek.com.au/job/%s"
)

// SeekAdapter queries Seek's internal search API for structured job data.
// The response schema drifts over time (field names have changed at least
// twice), so extraction is deliberately tolerant: gjson paths with ordered
// fallbacks instead of a rigid struct mapping.
type SeekAdapter struct {
	client        *http.Client
	defaultRegion string
	logger        *slog.Logger
}

// NewSeekAdapter creates the Seek adapter.
func NewSeekAdapter(client *http.Client, defaultRegion string, logger *slog.Logger) *SeekAdapter {
	return &SeekAdapter{client: client, defaultRegion: defaultRegion, logger: logger}
}

// Search queries one role. Network and format failures are logged and
// degrade to an empty result.
func (a *SeekAdapter) Search(ctx context.Context, role, location string) ([]model.Job, error) {
	body, err := retry.Do(ctx, a.logger, 2, 5*time.Second,
		func(ctx context.Context) ([]byte, error) {
			return a.fetch(ctx, role, location)
		})
	if err != nil {
		a.logger.Warn("seek search failed", "role", role, "error", classifyFetchError(SourceSeek, err))
		return nil, nil
	}

	jobs := a.parse(body)
	if len(jobs) == 0 {
		a.logger.Debug("seek search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceSeek})
	}
	a.logger.Info("seek search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *SeekAdapter) fetch(ctx context.Context, role, location string) ([]byte, error) {
	// Seek accepts plain location strings — "All Australia", "Melbourne
	// VIC", etc.
	where := location
	switch strings.ToLower(location) {
	case "", "australia", "all australia":
		where = "All Australia"
	}

	params := url.Values{}
	params.Set("siteKey", "AU-Main")
	params.Set("where", where)
	params.Set("page", "1")
	params.Set("keywords", role)
	params.Set("seekSelectAllPages", "true")
	params.Set("sortMode", "ListedDate")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, seekAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("seek request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")
	req.Header.Set("Referer", "https://www.seek.com.au/")
	req.Header.Set("X-Seek-Site", "Chalice")
	req.Header.Set("seek-request-brand", "seek")
	req.Header.Set("seek-request-country", "AU")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seek fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("seek fetch: unexpected status %d", resp.StatusCode),
		}
	}
	return drainBody(resp)
}

func (a *SeekAdapter) parse(body []byte) []model.Job {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		a.logger.Warn("seek payload not parseable",
			"error", &model.FormatError{Source: SourceSeek, Detail: "response is not a JSON object"})
		return nil
	}

	// "data" is the standard key; log the top-level keys on a miss so a
	// schema change can be diagnosed quickly.
	list := root.Get("data")
	for _, alt := range []string{"jobs", "results"} {
		if len(list.Array()) > 0 {
			break
		}
		list = root.Get(alt)
	}
	if len(list.Array()) == 0 {
		keys := make([]string, 0, 10)
		root.ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return len(keys) < 10
		})
		a.logger.Warn("seek response has no job list",
			"top_level_keys", keys,
			"error", &model.FormatError{Source: SourceSeek, Detail: "no data/jobs/results key"})
		return nil
	}

	var jobs []model.Job
	var skipped int
	for _, item := range list.Array() {
		title := item.Get("title").String()
		if title == "" {
			skipped++
			continue
		}

		// Seek has used id, jobId, and listingId over time.
		var jobURL string
		if id := firstString(item, "id", "jobId", "listingId"); id != "" {
			jobURL = fmt.Sprintf(seekJobURL, id)
		}

		company := item.Get("companyName").String()
		if company == "" {
			company = item.Get("advertiser.description").String()
		}

		location := a.defaultRegion
		if loc := item.Get("locations.0"); loc.IsObject() {
			parts := make([]string, 0, 3)
			for _, k := range []string{"suburb", "area", "state"} {
				if v := loc.Get(k).String(); v != "" {
					parts = append(parts, v)
				}
			}
			if len(parts) > 0 {
				location = strings.Join(parts, ", ")
			}
		}

		description := item.Get("teaser").String()
		if description == "" {
			bullets := item.Get("bulletPoints").Array()
			parts := make([]string, 0, len(bullets))
			for _, b := range bullets {
				parts = append(parts, b.String())
			}
			description = strings.Join(parts, " | ")
		}

		jobs = append(jobs, model.Job{
			Title:       title,
			Company:     orDefault(company, companyUnknown),
			Location:    location,
			URL:         jobURL,
			Source:      SourceSeek,
			Description: truncate(description, 400),
			Salary:      item.Get("salaryLabel").String(),
			DatePosted:  firstString(item, "listingDate", "listingDateDisplay"),
			ScrapedAt:   time.Now(),
		})
	}

	if skipped > 0 {
		a.logger.Debug("seek items skipped", "skipped", skipped, "reason", "missing title")
	}
	return jobs
}

// firstString returns the first path in r whose value is a non-empty
// string once rendered.
func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
