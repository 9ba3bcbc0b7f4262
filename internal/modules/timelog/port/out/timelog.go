package out

import (
	"context"
	"time"

	"timeclock/internal/modules/timelog/domain"
)

// LogStore owns the text log. It is the only component that mutates the file.
type LogStore interface {
	OpenEntry(ctx context.Context, at time.Time) error
	CloseEntry(ctx context.Context, category string, at time.Time) error
	Parse(ctx context.Context, now time.Time) ([]domain.TimeEntry, error)
}

// EntryProjector keeps a queryable copy of parsed entries.
type EntryProjector interface {
	ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error
	CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error)
}
