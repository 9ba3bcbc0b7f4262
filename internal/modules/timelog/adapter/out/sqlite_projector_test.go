package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	timelogout "timeclock/internal/modules/timelog/adapter/out"
	"timeclock/internal/modules/timelog/domain"
)

func entry(index int, day time.Time, category string, hours float64) domain.TimeEntry {
	end := day.Add(time.Duration(hours * float64(time.Hour)))
	return domain.TimeEntry{
		Index:        index,
		Date:         day,
		DayOfWeek:    day.Weekday().String()[:3],
		Category:     category,
		Start:        day,
		End:          end,
		Hours:        hours,
		Week:         domain.WeekOf(day),
		YearAndMonth: domain.MonthOf(day),
		Raw:          "raw",
	}
}

func TestSQLiteProjectorReplaceAllAndTotals(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "state", "timeclock.db")
	projector, err := timelogout.NewSQLiteEntryProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	defer projector.Close()

	day := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	if err := projector.ReplaceAll(ctx, []domain.TimeEntry{
		entry(0, day, "work", 2),
		entry(1, day, "admin", 1),
		entry(2, day.AddDate(0, 0, 1), "work", 3.5),
	}); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	totals, err := projector.CategoryTotals(ctx)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %+v", totals)
	}
	if totals[0].Category != "work" || totals[0].Hours != 5.5 || totals[0].Entries != 2 {
		t.Fatalf("unexpected first total %+v", totals[0])
	}

	if err := projector.ReplaceAll(ctx, []domain.TimeEntry{entry(0, day, "admin", 4)}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	totals, err = projector.CategoryTotals(ctx)
	if err != nil {
		t.Fatalf("category totals after replace: %v", err)
	}
	if len(totals) != 1 || totals[0].Category != "admin" || totals[0].Hours != 4 {
		t.Fatalf("replace must drop previous rows, got %+v", totals)
	}

	reopened, err := timelogout.NewSQLiteEntryProjector(dbPath)
	if err != nil {
		t.Fatalf("reopen projector must tolerate applied migrations: %v", err)
	}
	_ = reopened.Close()
}

func TestLazyProjectorOpensOnFirstUse(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "state", "timeclock.db")
	idle := timelogout.NewLazySQLiteEntryProjector(dbPath)
	if err := idle.Close(); err != nil {
		t.Fatalf("close unused projector: %v", err)
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("unused projector must not create the database, stat err = %v", err)
	}

	projector := timelogout.NewLazySQLiteEntryProjector(dbPath)
	defer projector.Close()
	day := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	if err := projector.ReplaceAll(context.Background(), []domain.TimeEntry{entry(0, day, "work", 2)}); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	totals, err := projector.CategoryTotals(context.Background())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(totals) != 1 || totals[0].Hours != 2 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}
