package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGradConnectionSearch_PrimaryMarkup(t *testing.T) {
	fixture := `
	<div class="campaign-listing-box">
		<h3><a href="/graduate-jobs/engineering/1">Graduate Software Engineer</a></h3>
		<p class="company-name">TechGrad Co</p>
		<p class="location">Sydney NSW</p>
		<p class="description">12-month rotation program.</p>
	</div>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := NewGradConnectionAdapter(testClient(srv), DefaultRegion, testLogger())
	jobs, err := a.Search(context.Background(), "software engineer", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Graduate Software Engineer" {
		t.Errorf("unexpected title: %q", j.Title)
	}
	if j.Company != "TechGrad Co" {
		t.Errorf("unexpected company: %q", j.Company)
	}
	if j.URL != "https://au.gradconnection.com/graduate-jobs/engineering/1" {
		t.Errorf("unexpected url: %q", j.URL)
	}
	if j.Source != SourceGradConnection {
		t.Errorf("unexpected source: %q", j.Source)
	}
}

func TestGradConnectionSearch_RedesignedMarkup(t *testing.T) {
	// No known class names survive; the generic heuristic has to carry it.
	fixture := `
	<section>
		<div class="xyzzy-tile">
			<h2><a href="/jobs/grad-analyst-7">Graduate Data Analyst</a></h2>
		</div>
	</section>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := NewGradConnectionAdapter(testClient(srv), DefaultRegion, testLogger())
	jobs, err := a.Search(context.Background(), "data analyst", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 heuristic job, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Graduate Data Analyst" {
		t.Errorf("unexpected title: %q", j.Title)
	}
	if j.Company != "Unknown" || j.Location != DefaultRegion {
		t.Errorf("expected defaults, got %q / %q", j.Company, j.Location)
	}
}

func TestGradConnectionSearch_TitlelessCardsDiscarded(t *testing.T) {
	fixture := `
	<div class="campaign-listing-box"><p class="company-name">Ghost Co</p></div>
	<div class="campaign-listing-box">
		<h3><a href="/jobs/2">Graduate Consultant</a></h3>
	</div>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := NewGradConnectionAdapter(testClient(srv), DefaultRegion, testLogger())
	jobs, err := a.Search(context.Background(), "consultant", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Graduate Consultant" {
		t.Fatalf("expected only the titled card, got %+v", jobs)
	}
}

func TestCareerOneSearch_AlwaysEmpty(t *testing.T) {
	a := NewCareerOneAdapter(testLogger())
	jobs, err := a.Search(context.Background(), "anything", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}
