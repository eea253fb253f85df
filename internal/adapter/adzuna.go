package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/roleradar/roleradar/internal/model"
	"github.com/roleradar/roleradar/internal/retry"
)

const (
	adzunaAPIURL         = "https://api.adzuna.com/v1/api/jobs/au/search/1"
	adzunaResultsPerPage = 20
)

// AdzunaAdapter queries the Adzuna jobs API. Adzuna aggregates data from
// Seek, Indeed and other boards, which makes it a useful single-API
// substitute for sources that block datacenter IPs.
//
// Requires an app_id/app_key credential pair; when absent the adapter is
// disabled, not broken: Search returns empty immediately with a
// configuration-missing note.
type AdzunaAdapter struct {
	appID         string
	appKey        string
	client        *resty.Client
	defaultRegion string
	logger        *slog.Logger
}

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
	Created     string         `json:"created"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	Area []string `json:"area"`
}

// NewAdzunaAdapter creates the Adzuna adapter. Empty credentials disable it.
func NewAdzunaAdapter(appID, appKey string, timeout time.Duration, defaultRegion string, logger *slog.Logger) *AdzunaAdapter {
	return &AdzunaAdapter{
		appID:         strings.TrimSpace(appID),
		appKey:        strings.TrimSpace(appKey),
		client:        resty.New().SetTimeout(timeout),
		defaultRegion: defaultRegion,
		logger:        logger,
	}
}

// Configured reports whether the credential pair is present.
func (a *AdzunaAdapter) Configured() bool {
	return a.appID != "" && a.appKey != ""
}

// Search queries one role. A missing credential pair is not a transport
// failure — the source is simply skipped.
func (a *AdzunaAdapter) Search(ctx context.Context, role, location string) ([]model.Job, error) {
	if !a.Configured() {
		a.logger.Warn("adzuna skipped",
			"error", &model.ConfigMissingError{Source: SourceAdzuna, Detail: "app_id/app_key not set"})
		return nil, nil
	}

	body, err := retry.Do(ctx, a.logger, 2, 5*time.Second,
		func(ctx context.Context) ([]byte, error) {
			return a.fetch(ctx, role, location)
		})
	if err != nil {
		a.logger.Warn("adzuna search failed", "role", role, "error", classifyFetchError(SourceAdzuna, err))
		return nil, nil
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		a.logger.Warn("adzuna payload not parseable",
			"error", &model.FormatError{Source: SourceAdzuna, Detail: err.Error()})
		return nil, nil
	}

	jobs := a.convert(apiResp.Results)
	if len(jobs) == 0 {
		a.logger.Debug("adzuna search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceAdzuna})
	}
	a.logger.Info("adzuna search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *AdzunaAdapter) fetch(ctx context.Context, role, location string) ([]byte, error) {
	where := location
	if strings.TrimSpace(where) == "" {
		where = a.defaultRegion
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"app_id":           a.appID,
			"app_key":          a.appKey,
			"results_per_page": strconv.Itoa(adzunaResultsPerPage),
			"what":             role,
			"where":            where,
			"content-type":     "application/json",
			"sort_by":          "date",
		}).
		Get(adzunaAPIURL)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch: %w", err)
	}

	switch {
	case resp.StatusCode() == 401:
		// Distinguished from a generic block: the operator's keys are wrong.
		return nil, &model.HTTPError{
			StatusCode: 401,
			Err:        fmt.Errorf("adzuna fetch: invalid API credentials"),
		}
	case resp.StatusCode() != 200:
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode(),
			RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After")),
			Err:        fmt.Errorf("adzuna fetch: unexpected status %d", resp.StatusCode()),
		}
	}

	return resp.Body(), nil
}

func (a *AdzunaAdapter) convert(results []adzunaResult) []model.Job {
	var jobs []model.Job
	var skipped int
	for _, r := range results {
		if r.Title == "" {
			skipped++
			continue
		}

		location := a.defaultRegion
		if len(r.Location.Area) > 0 {
			// The area list runs country → state → suburb; the last two
			// elements give the most specific readable location.
			start := len(r.Location.Area) - 2
			if start < 0 {
				start = 0
			}
			location = strings.Join(r.Location.Area[start:], ", ")
		}

		var salary string
		switch {
		case r.SalaryMin > 0 && r.SalaryMax > 0:
			salary = fmt.Sprintf("$%s–$%s", groupThousands(r.SalaryMin), groupThousands(r.SalaryMax))
		case r.SalaryMin > 0:
			salary = fmt.Sprintf("From $%s", groupThousands(r.SalaryMin))
		}

		jobs = append(jobs, model.Job{
			Title:       r.Title,
			Company:     orDefault(r.Company.DisplayName, companyUnknown),
			Location:    location,
			URL:         r.RedirectURL,
			Source:      SourceAdzuna,
			Description: truncate(r.Description, 300),
			Salary:      salary,
			DatePosted:  r.Created,
			ScrapedAt:   time.Now(),
		})
	}
	if skipped > 0 {
		a.logger.Debug("adzuna items skipped", "skipped", skipped, "reason", "missing title")
	}
	return jobs
}

// groupThousands renders a rounded amount with comma separators
// (125000 → "125,000").
func groupThousands(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
