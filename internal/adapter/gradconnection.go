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

const gradConnectionBaseURL = "https://au.gradconnection.com"

// GradConnectionAdapter scrapes GradConnection's AU search page. The
// site redesigns its markup often, hence the long strategy chain.
type GradConnectionAdapter struct {
	client        *http.Client
	defaultRegion string
	logger        *slog.Logger
}

// NewGradConnectionAdapter creates the GradConnection adapter.
func NewGradConnectionAdapter(client *http.Client, defaultRegion string, logger *slog.Logger) *GradConnectionAdapter {
	return &GradConnectionAdapter{client: client, defaultRegion: defaultRegion, logger: logger}
}

var gradConnectionStrategies = []extractStrategy{
	selectorStrategy("campaign-listing-box", "div.campaign-listing-box"),
	selectorStrategy("listing-box", "div[class*='listing-box']"),
	selectorStrategy("job-card", "div[class*='job-card']"),
	selectorStrategy("article", "article[class*='job'], article[class*='listing']"),
	genericCardStrategy(),
}

// Search queries one role. Results are graduate programs and entry-level
// roles; the matcher downstream decides whether they fit.
func (a *GradConnectionAdapter) Search(ctx context.Context, role, _ string) ([]model.Job, error) {
	searchURL := fmt.Sprintf("%s/jobs/?title=%s&ordering=-recent_job_created",
		gradConnectionBaseURL, url.QueryEscape(role))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gradconnection request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("gradconnection search failed", "role", role,
			"error", &model.TransportError{Source: SourceGradConnection, Err: err})
		return nil, nil
	}
	body, err := drainBody(resp)
	if err != nil {
		a.logger.Warn("gradconnection search failed", "role", role,
			"error", &model.TransportError{Source: SourceGradConnection, Err: err})
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("gradconnection search blocked", "role", role,
			"error", &model.BlockedError{Source: SourceGradConnection, StatusCode: resp.StatusCode})
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("gradconnection payload not parseable",
			"error", &model.FormatError{Source: SourceGradConnection, Detail: err.Error()})
		return nil, nil
	}

	jobs := a.parse(doc)
	if len(jobs) == 0 {
		a.logger.Debug("gradconnection search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceGradConnection})
	}
	a.logger.Info("gradconnection search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *GradConnectionAdapter) parse(doc *goquery.Document) []model.Job {
	cards, strategy := selectCards(doc, gradConnectionStrategies)
	if cards == nil {
		a.logger.Warn("gradconnection page has no job cards",
			"error", &model.FormatError{Source: SourceGradConnection, Detail: "no strategy yielded candidates"})
		return nil
	}
	a.logger.Debug("gradconnection cards found", "strategy", strategy, "cards", cards.Length())

	var jobs []model.Job
	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card, "h3 a", "h3", "h2 a", "h2", "a[class*='title']")
		if title == "" {
			return
		}

		var jobURL string
		if href := firstAttr(card, "href", "h3 a", "h2 a", "a[href]"); href != "" {
			jobURL = absoluteURL(gradConnectionBaseURL, href)
		}

		jobs = append(jobs, model.Job{
			Title: title,
			Company: orDefault(firstText(card,
				"p[class*='company']", "div[class*='company']", "span[class*='company']"), companyUnknown),
			Location: orDefault(firstText(card,
				"p[class*='location']", "div[class*='location']", "span[class*='location']"), a.defaultRegion),
			URL:    jobURL,
			Source: SourceGradConnection,
			Description: truncate(firstText(card,
				"p[class*='description']", "div[class*='description']"), 400),
			ScrapedAt: time.Now(),
		})
	})
	return jobs
}
