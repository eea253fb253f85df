// Package store owns the jobs and scrape_runs tables. No other component
// writes to them.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/roleradar/roleradar/internal/model"
)

// SQLiteStore persists matched jobs across runs and records run history.
//
// Uniqueness is enforced only on non-empty URLs: an empty URL is stored as
// NULL so the UNIQUE constraint never collapses URL-less jobs. Those may
// accumulate duplicates across runs — accepted behavior, guarded only by
// the matcher's per-run dedup key.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and
// ensures the jobs and scrape_runs tables exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createJobs := `CREATE TABLE IF NOT EXISTS jobs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT    NOT NULL,
		company     TEXT,
		location    TEXT,
		salary      TEXT,
		date_posted TEXT,
		url         TEXT    UNIQUE,
		source      TEXT,
		description TEXT,
		scraped_at  TEXT,
		first_seen  TEXT    NOT NULL
	)`
	if _, err := db.Exec(createJobs); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating jobs table: %w", err)
	}

	createRuns := `CREATE TABLE IF NOT EXISTS scrape_runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at     TEXT NOT NULL,
		roles      TEXT,
		jobs_found INTEGER,
		jobs_new   INTEGER
	)`
	if _, err := db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating scrape_runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// UpsertJobs inserts each job unless its URL already exists
// (insert-or-ignore: an existing row, including first_seen, is untouched —
// a later sighting never refreshes description or salary). Returns
// (total_processed, new_count) where new_count counts only genuinely new
// rows. Write errors propagate; silently losing a write would break the
// dedup invariant.
func (s *SQLiteStore) UpsertJobs(jobs []model.Job) (int, int, error) {
	if len(jobs) == 0 {
		return 0, 0, nil
	}

	now := time.Now().Format(time.RFC3339)
	newCount := 0

	for _, job := range jobs {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO jobs
				(title, company, location, salary, date_posted, url,
				 source, description, scraped_at, first_seen)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.Title,
			job.Company,
			job.Location,
			nullable(job.Salary),
			nullable(job.DatePosted),
			nullable(job.URL),
			job.Source,
			job.Description,
			job.ScrapedAt.Format(time.RFC3339),
			now,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting job %q: %w", job.Title, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("inserting job %q: rows affected: %w", job.Title, err)
		}
		if n > 0 {
			newCount++
		}
	}

	return len(jobs), newCount, nil
}

// RecordRun appends one immutable scrape_runs row. Never swallowed: a
// failure here propagates to the caller.
func (s *SQLiteStore) RecordRun(roles []string, jobsFound, jobsNew int) error {
	_, err := s.db.Exec(
		`INSERT INTO scrape_runs (run_at, roles, jobs_found, jobs_new) VALUES (?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339),
		strings.Join(roles, ", "),
		jobsFound,
		jobsNew,
	)
	if err != nil {
		return fmt.Errorf("recording scrape run: %w", err)
	}
	return nil
}

// Recent returns up to limit stored jobs ordered by first_seen descending,
// optionally restricted to one source. Pass "" for no source filter.
func (s *SQLiteStore) Recent(limit int, sourceFilter string) ([]model.StoredJob, error) {
	query := `SELECT id, title, company, location, salary, date_posted,
				 url, source, description, scraped_at, first_seen
			  FROM jobs`
	args := []any{}
	if sourceFilter != "" {
		query += " WHERE source = ?"
		args = append(args, sourceFilter)
	}
	query += " ORDER BY first_seen DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recent jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.StoredJob
	for rows.Next() {
		var (
			j          model.StoredJob
			salary     sql.NullString
			datePosted sql.NullString
			url        sql.NullString
			scrapedAt  string
			firstSeen  string
		)
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &salary,
			&datePosted, &url, &j.Source, &j.Description, &scrapedAt, &firstSeen); err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		j.Salary = salary.String
		j.DatePosted = datePosted.String
		j.URL = url.String
		j.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		j.FirstSeen, _ = time.Parse(time.RFC3339, firstSeen)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job rows: %w", err)
	}
	return jobs, nil
}

// AllSources returns the distinct sources currently stored, sorted.
func (s *SQLiteStore) AllSources() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT source FROM jobs WHERE source != '' ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("scanning source row: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source rows: %w", err)
	}
	return sources, nil
}

// LastRun returns the most recent scrape run, or nil when none exists.
func (s *SQLiteStore) LastRun() (*model.ScrapeRun, error) {
	var (
		run   model.ScrapeRun
		runAt string
	)
	err := s.db.QueryRow(
		`SELECT id, run_at, roles, jobs_found, jobs_new
		 FROM scrape_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&run.ID, &runAt, &run.Roles, &run.JobsFound, &run.JobsNew)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last run: %w", err)
	}
	run.RunAt, _ = time.Parse(time.RFC3339, runAt)
	return &run, nil
}

// ClearJobs removes all job rows but preserves the run history.
// Destructive, no undo.
func (s *SQLiteStore) ClearJobs() error {
	if _, err := s.db.Exec(`DELETE FROM jobs`); err != nil {
		return fmt.Errorf("clearing jobs: %w", err)
	}
	return nil
}

// ClearAll removes all job rows and the run history. Destructive, no undo.
func (s *SQLiteStore) ClearAll() error {
	if err := s.ClearJobs(); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM scrape_runs`); err != nil {
		return fmt.Errorf("clearing scrape runs: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullable maps "" to NULL so UNIQUE(url) never treats two absent URLs as
// the same value, and so absent salary/date read back as absent.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
