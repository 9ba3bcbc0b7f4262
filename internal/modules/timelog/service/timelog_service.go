package service

import (
	"context"
	"fmt"
	"time"

	"timeclock/internal/modules/timelog/domain"
	timelogout "timeclock/internal/modules/timelog/port/out"
	"timeclock/internal/platform/clock"
	apperrors "timeclock/internal/platform/errors"
)

type TimelogService struct {
	clock     clock.Clock
	store     timelogout.LogStore
	projector timelogout.EntryProjector
}

func NewTimelogService(clock clock.Clock, store timelogout.LogStore, projector timelogout.EntryProjector) *TimelogService {
	return &TimelogService{clock: clock, store: store, projector: projector}
}

func (s *TimelogService) Now() time.Time {
	return s.clock.Now()
}

func (s *TimelogService) Entries(ctx context.Context) ([]domain.TimeEntry, error) {
	return s.store.Parse(ctx, s.clock.Now())
}

// Current finds the first open entry. Its Hours are extended by every closed entry on the
// same calendar day; the second value is the open segment alone.
func (s *TimelogService) Current(ctx context.Context) (domain.TimeEntry, float64, bool, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return domain.TimeEntry{}, 0, false, err
	}
	current, open, found := CurrentOf(entries)
	return current, open, found, nil
}

// CurrentOf is Current over an already parsed log.
func CurrentOf(entries []domain.TimeEntry) (domain.TimeEntry, float64, bool) {
	var current domain.TimeEntry
	found := false
	for _, entry := range entries {
		if entry.IsCurrent {
			current = entry
			found = true
			break
		}
	}
	if !found {
		return domain.TimeEntry{}, 0, false
	}
	open := current.Hours
	for _, entry := range entries {
		if !entry.IsCurrent && entry.SameDay(current.Date) {
			current.Hours += entry.Hours
		}
	}
	return current, open, true
}

func (s *TimelogService) Open(ctx context.Context) (time.Time, error) {
	now := s.clock.Now()
	if err := s.store.OpenEntry(ctx, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// Close ends the open entry at the current time. The entry must have started earlier on
// the same calendar day.
func (s *TimelogService) Close(ctx context.Context, open domain.TimeEntry, category string) (time.Time, error) {
	now := s.clock.Now()
	if !open.SameDay(now) {
		return time.Time{}, fmt.Errorf("%w: entry started %s", apperrors.ErrSpansDays, open.Date.Format("Mon Jan 02 2006"))
	}
	if now.Before(open.Start) {
		return time.Time{}, apperrors.ErrEndBeforeStart
	}
	if err := s.store.CloseEntry(ctx, category, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// Reindex replaces the projection with a fresh parse of the log.
func (s *TimelogService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("projection store is not configured")
	}
	entries, err := s.Entries(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// CategoryTotals reindexes first so the totals always match the log as it is now.
func (s *TimelogService) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return s.projector.CategoryTotals(ctx)
}
