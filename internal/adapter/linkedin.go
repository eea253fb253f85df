package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/roleradar/roleradar/internal/model"
)

const linkedInSearchURL = "https://www.linkedin.com/jobs/search"

// linkedInBlockedStatus is LinkedIn's custom bot-detection status. The
// site is up when it returns this; it just refused the request.
const linkedInBlockedStatus = 999

// LinkedInAdapter scrapes LinkedIn's guest-visible job search page.
type LinkedInAdapter struct {
	client        *http.Client
	defaultRegion string
	logger        *slog.Logger
}

// NewLinkedInAdapter creates the LinkedIn adapter.
func NewLinkedInAdapter(client *http.Client, defaultRegion string, logger *slog.Logger) *LinkedInAdapter {
	return &LinkedInAdapter{client: client, defaultRegion: defaultRegion, logger: logger}
}

var linkedInStrategies = []extractStrategy{
	selectorStrategy("base-card", "div[class*='base-card']"),
	selectorStrategy("search-card", "li div[class*='job-search-card']"),
	genericCardStrategy(),
}

// Search queries one role. LinkedIn is the strictest of the scraped
// sources; a 999 means the guest endpoint noticed us and the run simply
// yields nothing from it.
func (a *LinkedInAdapter) Search(ctx context.Context, role, location string) ([]model.Job, error) {
	if location == "" {
		location = a.defaultRegion
	}
	searchURL := fmt.Sprintf("%s?keywords=%s&location=%s&f_TPR=r86400",
		linkedInSearchURL, url.QueryEscape(role), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin request: %w", err)
	}
	setBrowserHeaders(req)
	// The guest endpoint checks for a realistic fetch context.
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("linkedin search failed", "role", role,
			"error", &model.TransportError{Source: SourceLinkedIn, Err: err})
		return nil, nil
	}
	body, err := drainBody(resp)
	if err != nil {
		a.logger.Warn("linkedin search failed", "role", role,
			"error", &model.TransportError{Source: SourceLinkedIn, Err: err})
		return nil, nil
	}
	if resp.StatusCode == linkedInBlockedStatus {
		a.logger.Warn("linkedin bot detection triggered", "role", role,
			"error", &model.BlockedError{Source: SourceLinkedIn, StatusCode: resp.StatusCode})
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("linkedin search blocked", "role", role,
			"error", &model.BlockedError{Source: SourceLinkedIn, StatusCode: resp.StatusCode})
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("linkedin payload not parseable",
			"error", &model.FormatError{Source: SourceLinkedIn, Detail: err.Error()})
		return nil, nil
	}

	jobs := a.parse(doc)
	if len(jobs) == 0 {
		a.logger.Debug("linkedin search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceLinkedIn})
	}
	a.logger.Info("linkedin search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *LinkedInAdapter) parse(doc *goquery.Document) []model.Job {
	cards, strategy := selectCards(doc, linkedInStrategies)
	if cards == nil {
		a.logger.Warn("linkedin page has no job cards",
			"error", &model.FormatError{Source: SourceLinkedIn, Detail: "no strategy yielded candidates"})
		return nil
	}
	a.logger.Debug("linkedin cards found", "strategy", strategy, "cards", cards.Length())

	var jobs []model.Job
	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card, "h3[class*='base-search-card__title']", "h3")
		if title == "" {
			return
		}

		company := firstText(card,
			"h4[class*='base-search-card__subtitle']", "a[class*='hidden-nested-link']", "h4")

		// Tracking parameters make otherwise-identical postings look
		// distinct, so the query string goes.
		jobURL := firstAttr(card, "href", "a[class*='base-card__full-link']", "a[href]")
		if jobURL != "" {
			jobURL, _, _ = strings.Cut(jobURL, "?")
		}

		var datePosted string
		if dt, ok := card.Find("time[datetime]").Attr("datetime"); ok {
			datePosted = dt
		} else {
			datePosted = firstText(card, "time")
		}

		jobs = append(jobs, model.Job{
			Title:      title,
			Company:    orDefault(company, companyUnknown),
			Location:   orDefault(firstText(card, "span[class*='job-search-card__location']"), a.defaultRegion),
			URL:        jobURL,
			Source:     SourceLinkedIn,
			DatePosted: datePosted,
			ScrapedAt:  time.Now(),
		})
	})
	return jobs
}
