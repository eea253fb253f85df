package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roleradar/roleradar/internal/match"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Minimal(t *testing.T) {
	t.Setenv("ADZUNA_APP_ID", "")
	t.Setenv("ADZUNA_APP_KEY", "")
	path := writeConfig(t, `
roles:
  - project manager
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Location != "Australia" {
		t.Errorf("expected default location, got %q", cfg.Location)
	}
	if cfg.MatchMode != match.ModeExact {
		t.Errorf("expected default exact mode, got %q", cfg.MatchMode)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.Store.Path != "jobs.db" {
		t.Errorf("unexpected store path: %q", cfg.Store.Path)
	}
	// Credential-free default source set.
	want := []string{"Seek", "Indeed", "Jora", "LinkedIn", "GradConnection"}
	if len(cfg.Sources) != len(want) {
		t.Fatalf("unexpected sources: %v", cfg.Sources)
	}
	for i, s := range want {
		if cfg.Sources[i] != s {
			t.Errorf("sources[%d] = %q, want %q", i, cfg.Sources[i], s)
		}
	}
	if d := cfg.RateLimit.SourceOverrides["LinkedIn"]; d != 3*time.Second {
		t.Errorf("expected LinkedIn delay floor of 3s, got %v", d)
	}
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
roles:
  - project manager
  - business analyst
location: Sydney NSW
match_mode: similar
sources:
  - Seek
  - Adzuna
adzuna:
  app_id: id-7
  app_key: key-7
rate_limit:
  min_delay: 4s
  source_overrides:
    Seek: 10s
store:
  path: /tmp/roleradar-test.db
http_timeout: 15s
schedule: "0 */6 * * *"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MatchMode != match.ModeSimilar {
		t.Errorf("unexpected mode: %q", cfg.MatchMode)
	}
	if cfg.Adzuna.AppID != "id-7" || cfg.Adzuna.AppKey != "key-7" {
		t.Errorf("unexpected adzuna credentials: %+v", cfg.Adzuna)
	}
	if cfg.RateLimit.MinDelay != 4*time.Second {
		t.Errorf("unexpected min delay: %v", cfg.RateLimit.MinDelay)
	}
	if cfg.RateLimit.SourceOverrides["Seek"] != 10*time.Second {
		t.Errorf("explicit override must win, got %v", cfg.RateLimit.SourceOverrides["Seek"])
	}
	if cfg.Schedule != "0 */6 * * *" {
		t.Errorf("unexpected schedule: %q", cfg.Schedule)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_ADZUNA_KEY", "secret-from-env")
	path := writeConfig(t, `
roles:
  - analyst
adzuna:
  app_id: id-1
  app_key: ${TEST_ADZUNA_KEY}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Adzuna.AppKey != "secret-from-env" {
		t.Errorf("expected env expansion, got %q", cfg.Adzuna.AppKey)
	}
}

func TestLoad_AdzunaEnvFallback(t *testing.T) {
	t.Setenv("ADZUNA_APP_ID", "env-id")
	t.Setenv("ADZUNA_APP_KEY", "env-key")
	path := writeConfig(t, `
roles:
  - analyst
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Adzuna.AppID != "env-id" || cfg.Adzuna.AppKey != "env-key" {
		t.Errorf("expected env credentials, got %+v", cfg.Adzuna)
	}
	// With credentials present, Adzuna joins the default source set.
	found := false
	for _, s := range cfg.Sources {
		if s == "Adzuna" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Adzuna in default sources, got %v", cfg.Sources)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"no roles":       `location: Sydney`,
		"empty role":     "roles:\n  - \"\"",
		"bad mode":       "roles:\n  - analyst\nmatch_mode: fuzzy",
		"unknown source": "roles:\n  - analyst\nsources:\n  - Monster",
		"bad delay":      "roles:\n  - analyst\nrate_limit:\n  min_delay: fast",
		"bad timeout":    "roles:\n  - analyst\nhttp_timeout: -5s",
	}
	for name, contents := range cases {
		if _, err := Load(writeConfig(t, contents)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}
