package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const linkedInFixture = `
<ul>
	<li>
		<div class="base-card relative">
			<a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/pm-at-acme-42?trk=guest&refId=abc">view</a>
			<h3 class="base-search-card__title">Project Manager</h3>
			<h4 class="base-search-card__subtitle">Acme Infrastructure</h4>
			<span class="job-search-card__location">Sydney, New South Wales, Australia</span>
			<time datetime="2026-08-19">1 week ago</time>
		</div>
	</li>
	<li>
		<div class="base-card relative">
			<h3 class="base-search-card__title">Program Manager</h3>
			<span class="job-search-card__location"></span>
		</div>
	</li>
</ul>`

func TestLinkedInSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Sec-Fetch-Mode") != "navigate" {
			t.Errorf("missing browser fetch headers")
		}
		w.Write([]byte(linkedInFixture))
	}))
	defer srv.Close()

	a := NewLinkedInAdapter(testClient(srv), DefaultRegion, testLogger())
	jobs, err := a.Search(context.Background(), "project manager", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Project Manager" {
		t.Errorf("unexpected title: %q", j.Title)
	}
	if j.Company != "Acme Infrastructure" {
		t.Errorf("unexpected company: %q", j.Company)
	}
	if j.URL != "https://www.linkedin.com/jobs/view/pm-at-acme-42" {
		t.Errorf("tracking parameters must be stripped, got %q", j.URL)
	}
	if j.DatePosted != "2026-08-19" {
		t.Errorf("unexpected date: %q", j.DatePosted)
	}

	j = jobs[1]
	if j.Company != "Unknown" {
		t.Errorf("expected Unknown company, got %q", j.Company)
	}
	if j.Location != DefaultRegion {
		t.Errorf("expected default region, got %q", j.Location)
	}
}

func TestLinkedInSearch_BotDetection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(999)
	}))
	defer srv.Close()

	a := NewLinkedInAdapter(testClient(srv), DefaultRegion, testLogger())
	jobs, err := a.Search(context.Background(), "project manager", "")
	if err != nil {
		t.Fatalf("status 999 must degrade to empty, got error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}
