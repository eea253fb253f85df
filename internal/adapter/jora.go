package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/roleradar/roleradar/internal/model"
)

const joraBaseURL = "https://au.jora.com"

var (
	joraLocationRegexp = regexp.MustCompile(`(?i)<b>Location:\s*</b>\s*([^<]+)`)
	joraCompanyRegexp  = regexp.MustCompile(`(?i)<b>Company:\s*</b>\s*([^<]+)`)
)

// JoraAdapter reads Jora's RSS feed, falling back to the HTML search
// page when the feed is unavailable or empty. Jora blocks datacenter IP
// ranges at the HTML level; the RSS endpoint is far less restricted, so
// it goes first.
type JoraAdapter struct {
	client        *http.Client
	feed          *gofeed.Parser
	defaultRegion string
	logger        *slog.Logger
}

// NewJoraAdapter creates the Jora adapter.
func NewJoraAdapter(client *http.Client, defaultRegion string, logger *slog.Logger) *JoraAdapter {
	feed := gofeed.NewParser()
	feed.Client = client
	feed.UserAgent = userAgent
	return &JoraAdapter{client: client, feed: feed, defaultRegion: defaultRegion, logger: logger}
}

// Search queries one role, RSS first.
func (a *JoraAdapter) Search(ctx context.Context, role, location string) ([]model.Job, error) {
	if location == "" {
		location = a.defaultRegion
	}

	feedURL := fmt.Sprintf("%s/j?q=%s&l=%s&type=rss",
		joraBaseURL, url.QueryEscape(role), url.QueryEscape(location))

	feed, err := a.feed.ParseURLWithContext(feedURL, ctx)
	switch {
	case err != nil:
		a.logger.Warn("jora rss failed, trying html", "role", role,
			"error", &model.TransportError{Source: SourceJora, Err: err})
	case len(feed.Items) == 0:
		a.logger.Info("jora rss empty, trying html", "role", role)
	default:
		jobs := a.parseFeed(feed)
		a.logger.Info("jora rss done", "role", role, "jobs", len(jobs))
		return jobs, nil
	}

	jobs := a.searchHTML(ctx, role, location)
	if len(jobs) == 0 {
		a.logger.Debug("jora search empty", "role", role,
			"error", &model.EmptyResultError{Source: SourceJora})
	}
	a.logger.Info("jora search done", "role", role, "jobs", len(jobs))
	return jobs, nil
}

func (a *JoraAdapter) parseFeed(feed *gofeed.Feed) []model.Job {
	var jobs []model.Job
	for _, item := range feed.Items {
		rawTitle := strings.TrimSpace(item.Title)
		if rawTitle == "" {
			continue
		}

		// Feed titles are usually "Job Title - Company Name".
		title := rawTitle
		company := companyUnknown
		if idx := strings.LastIndex(rawTitle, " - "); idx >= 0 {
			title = strings.TrimSpace(rawTitle[:idx])
			company = strings.TrimSpace(rawTitle[idx+3:])
		}

		location := a.defaultRegion
		if m := joraLocationRegexp.FindStringSubmatch(item.Description); m != nil {
			location = strings.TrimSpace(m[1])
		}
		if m := joraCompanyRegexp.FindStringSubmatch(item.Description); m != nil {
			company = strings.TrimSpace(m[1])
		}

		jobs = append(jobs, model.Job{
			Title:       title,
			Company:     company,
			Location:    location,
			URL:         item.Link,
			Source:      SourceJora,
			Description: truncate(stripTags(item.Description), 400),
			DatePosted:  item.Published,
			ScrapedAt:   time.Now(),
		})
	}
	return jobs
}

func (a *JoraAdapter) searchHTML(ctx context.Context, role, location string) []model.Job {
	searchURL := fmt.Sprintf("%s/j?q=%s&l=%s&sp=search&sr=recent",
		joraBaseURL, url.QueryEscape(role), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil
	}
	setBrowserHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("jora html failed", "role", role,
			"error", &model.TransportError{Source: SourceJora, Err: err})
		return nil
	}
	body, err := drainBody(resp)
	if err != nil {
		a.logger.Warn("jora html failed", "role", role,
			"error", &model.TransportError{Source: SourceJora, Err: err})
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("jora html blocked", "role", role,
			"error", &model.BlockedError{Source: SourceJora, StatusCode: resp.StatusCode})
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("jora payload not parseable",
			"error", &model.FormatError{Source: SourceJora, Detail: err.Error()})
		return nil
	}
	return a.parseHTML(doc)
}

func (a *JoraAdapter) parseHTML(doc *goquery.Document) []model.Job {
	var jobs []model.Job
	doc.Find("div.job-card").Each(func(_ int, card *goquery.Selection) {
		title := firstText(card, "a[class*='job-title']", "h2", "h3")
		if title == "" {
			return
		}

		var jobURL string
		if href := firstAttr(card, "href", "a[class*='job-title']", "h2 a", "h3 a", "a[href]"); href != "" {
			jobURL = absoluteURL(joraBaseURL, href)
		}

		var datePosted string
		if dt, ok := card.Find("time[datetime]").Attr("datetime"); ok {
			datePosted = dt
		} else {
			datePosted = firstText(card, "time", "[class*='date']")
		}

		jobs = append(jobs, model.Job{
			Title: title,
			Company: orDefault(firstText(card,
				"[class*='company']", "span[class*='employer']"), companyUnknown),
			Location:    orDefault(firstText(card, "[class*='location']"), a.defaultRegion),
			URL:         jobURL,
			Source:      SourceJora,
			Description: truncate(firstText(card, "[class*='abstract']"), 400),
			DatePosted:  datePosted,
			ScrapedAt:   time.Now(),
		})
	})
	return jobs
}
