package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testProber() *Prober {
	return NewProber(&http.Client{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// withSourceURL points a source name at a test server for the duration of
// the test.
func withSourceURL(t *testing.T, name, url string) {
	t.Helper()
	prev, had := sourceURLs[name]
	sourceURLs[name] = url
	t.Cleanup(func() {
		if had {
			sourceURLs[name] = prev
		} else {
			delete(sourceURLs, name)
		}
	})
}

func TestProbeAll_Classification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/bot":
			w.WriteHeader(999)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	withSourceURL(t, "ok-source", srv.URL+"/ok")
	withSourceURL(t, "bot-source", srv.URL+"/bot")
	withSourceURL(t, "gone-source", srv.URL+"/gone")

	results := testProber().ProbeAll(context.Background(),
		[]string{"ok-source", "bot-source", "gone-source", "mystery-source"})
	if len(results) != 4 {
		t.Fatalf("expected a result per source, got %d", len(results))
	}

	h := results["ok-source"]
	if !h.Online || h.StatusCode != 200 || h.Note != "OK" {
		t.Errorf("unexpected ok result: %+v", h)
	}

	h = results["bot-source"]
	if !h.Online || h.StatusCode != 999 || h.Note != "Reachable (bot-detection active)" {
		t.Errorf("status 999 means up-but-guarded, got %+v", h)
	}

	h = results["gone-source"]
	if !h.Online || h.Note != "HTTP 404" {
		t.Errorf("a 4xx homepage is still online, got %+v", h)
	}

	h = results["mystery-source"]
	if h.Online || h.Note != "Unknown source" {
		t.Errorf("unexpected unknown-source result: %+v", h)
	}
}

func TestProbeAll_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	withSourceURL(t, "dead-source", addr)

	results := testProber().ProbeAll(context.Background(), []string{"dead-source"})
	h := results["dead-source"]
	if h.Online {
		t.Fatalf("expected offline, got %+v", h)
	}
	if h.Note != "Connection refused" {
		t.Errorf("unexpected note: %q", h.Note)
	}
}

func TestProbeAll_KnownSourcesHaveURLs(t *testing.T) {
	for _, name := range []string{"Seek", "Indeed", "Jora", "LinkedIn", "GradConnection", "Adzuna"} {
		if _, ok := sourceURLs[name]; !ok {
			t.Errorf("no probe URL for %s", name)
		}
	}
}
