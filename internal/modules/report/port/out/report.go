package out

import (
	"context"
	"time"

	timelogdomain "timeclock/internal/modules/timelog/domain"
)

// EntrySource yields the parsed time log, measuring open entries against now.
type EntrySource interface {
	Entries(ctx context.Context, now time.Time) ([]timelogdomain.TimeEntry, error)
}
