package adapter

import (
	"context"
	"log/slog"

	"github.com/roleradar/roleradar/internal/model"
)

// CareerOneAdapter is a placeholder. CareerOne renders its listings via
// JavaScript, so plain HTTP requests only receive empty skeleton cards.
// Adzuna aggregates CareerOne data and covers the gap.
type CareerOneAdapter struct {
	logger *slog.Logger
}

// NewCareerOneAdapter creates the CareerOne adapter.
func NewCareerOneAdapter(logger *slog.Logger) *CareerOneAdapter {
	return &CareerOneAdapter{logger: logger}
}

// Search always yields nothing; it logs why so the run report is honest.
func (a *CareerOneAdapter) Search(_ context.Context, role, _ string) ([]model.Job, error) {
	a.logger.Warn("careerone needs a javascript-rendered page, skipping",
		"role", role, "hint", "enable Adzuna, it aggregates CareerOne data")
	return nil, nil
}
