package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/roleradar/roleradar/internal/model"
)

const (
	indeedBaseURL   = "https://au.indeed.com"
	indeedSearchURL = indeedBaseURL + "/jobs"
)

// IndeedAdapter scrapes Indeed's AU search results page. Indeed blocks
// datacenter IPs aggressively; this works best from a residential
// connection, with Adzuna as a substitute elsewhere.
type IndeedAdapter struct {
	client        *http.Client
	defaultRegion string
	logger        *slog.Logger
}

// NewIndeedAdapter creates the Indeed adapter.
func NewIndeedAdapter(client *http.Client, defaultRegion string, logger *slog.Logger) *IndeedAdapter {
	return &IndeedAdapter{client: client, defaultRegion: defaultRegion, logger: logger}
}

var indeedStrategies = []extractStrategy{
	// div.job_seen_beacon wraps each result card.
	selectorStrategy("job-seen-beacon", "div[class*='job_seen_beacon']"),
	selectorStrategy("result-card", "div[class*='cardOutline']"),
	genericCardStrategy(),
}

// Search queries one role. au.indeed.com is AU-specific already, so the
// location hint is not sent — location-less cards fall back to the
// configured default region.
func (a *IndeedAdapter) Search(ctx context.Context, role, _ string) ([]model.Job, error) {
	searchURL := fmt.Sprintf("%s?q=%s&sort=date", indeedSearchURL, url.QueryEscape(role))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("indeed request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("indeed search failed", "role", role,
			"error", &model.TransportError{Source: SourceIndeed, Err: err})
		return nil, nil
	}
	body, err := drainBody(resp)
	if err != nil {
		a.logger.Warn("indeed search failed", "role", role,
			"error", &model.TransportError{Source: SourceIndeed, Err: err})
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("indeed search blocked", "role", role,
			"error", &model.BlockedError{Source: SourceIndeed, StatusCode: resp.StatusCode})
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("indeed payload not parseable",
			"error", &model.FormatError{Source: SourceIndeed, Detail: err.Error()})
		return nil, nil
	}

	jobs := a.parse(doc)
	if len(jobs) == 0 {
		a.logger.Debug("indeed search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceIndeed})
	}
	a.logger.Info("indeed search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *IndeedAdapter) parse(doc *goquery.Document) []model.Job {
	cards, strategy := selectCards(doc, indeedStrategies)
	if cards == nil {
		a.logger.Warn("indeed page has no job cards",
			"error", &model.FormatError{Source: SourceIndeed, Detail: "no strategy yielded candidates"})
		return nil
	}
	a.logger.Debug("indeed cards found", "strategy", strategy, "cards", cards.Length())

	var jobs []model.Job
	var skipped int
	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card, "h2[class*='jobTitle'] a", "h2[class*='jobTitle']", "h2")
		if title == "" {
			skipped++
			return
		}

		// data-jk is the stable job key; href is the fallback.
		var jobURL string
		if jk := firstAttr(card, "data-jk", "a[data-jk]", "[data-jk]"); jk != "" {
			jobURL = fmt.Sprintf("%s/viewjob?jk=%s", indeedBaseURL, jk)
		} else if href := firstAttr(card, "href", "h2 a", "a[href]"); href != "" {
			jobURL = absoluteURL(indeedBaseURL, href)
		}

		jobs = append(jobs, model.Job{
			Title:   title,
			Company: orDefault(firstText(card, "span[data-testid='company-name']", "span[class*='companyName']", "a[data-testid='company-name']"), companyUnknown),
			Location: orDefault(firstText(card,
				"div[data-testid='text-location']", "div[class*='companyLocation']"), a.defaultRegion),
			URL:         jobURL,
			Source:      SourceIndeed,
			Description: truncate(firstText(card, "[class*='job-snippet']"), 400),
			Salary: firstText(card,
				"[data-testid='attribute_snippet_testid']", "[class*='salary']"),
			ScrapedAt: time.Now(),
		})
	})

	if skipped > 0 {
		a.logger.Debug("indeed cards skipped", "skipped", skipped, "reason", "missing title")
	}
	return jobs
}
