package out

import (
	"context"
	"time"

	reportout "timeclock/internal/modules/report/port/out"
	timelogdomain "timeclock/internal/modules/timelog/domain"
	timelogout "timeclock/internal/modules/timelog/port/out"
)

type LogEntrySource struct {
	store timelogout.LogStore
}

func NewLogEntrySource(store timelogout.LogStore) reportout.EntrySource {
	return &LogEntrySource{store: store}
}

func (s *LogEntrySource) Entries(ctx context.Context, now time.Time) ([]timelogdomain.TimeEntry, error) {
	return s.store.Parse(ctx, now)
}
