package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		FilePath:   filepath.Join(dir, "hours.txt"),
		HourlyWage: decimal.NewFromInt(10),
		BackupDir:  filepath.Join(dir, "backups"),
		DBPath:     filepath.Join(dir, "timeclock.db"),
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func TestPrepareCreatesMissingLog(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := Prepare(cfg, time.Now(), logging.Discard()); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if _, err := os.Stat(cfg.FilePath); err != nil {
		t.Fatalf("expected log to be created: %v", err)
	}
	if _, err := os.Stat(cfg.BackupDir); !os.IsNotExist(err) {
		t.Fatalf("expected no backup dir for a fresh log, got %v", err)
	}
}

func TestPrepareBacksUpExistingLog(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	content := "Mon Jan 15 2024  09:00-10:00 dev\n"
	if err := os.WriteFile(cfg.FilePath, []byte(content), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	at := time.UnixMilli(1700000000000)
	if err := Prepare(cfg, at, logging.Discard()); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	copied, err := os.ReadFile(filepath.Join(cfg.BackupDir, "hours.txt-1700000000000"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(copied) != content {
		t.Fatalf("backup content = %q", copied)
	}
}

func TestAppClockCycle(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	clk := &stepClock{now: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.Local)}
	app, err := newApp(cfg, logging.Discard(), clk)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	ctx := context.Background()
	if _, err := app.TimelogCLI.ClockIn(ctx); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	clk.now = clk.now.Add(90 * time.Minute)
	out, err := app.TimelogCLI.ClockOut(ctx, "dev")
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if out.Hours != 1.5 {
		t.Fatalf("expected 1.5h, got %v", out.Hours)
	}

	payload, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.TrimSpace(string(payload)); got != "Mon Jan 15 2024  09:00-10:30 dev" {
		t.Fatalf("unexpected log %q", got)
	}

	weeks, err := app.ReportCLI.Weeks(ctx)
	if err != nil {
		t.Fatalf("weeks: %v", err)
	}
	if len(weeks.Weeks) != 1 || weeks.Weeks[0].Total != 1.5 {
		t.Fatalf("unexpected weeks %+v", weeks)
	}

	reindexed, err := app.TimelogCLI.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if reindexed.Entries != 1 {
		t.Fatalf("expected one projected entry, got %d", reindexed.Entries)
	}
	totals, err := app.TimelogCLI.CategoryTotals(ctx)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 1 || totals[0].Category != "dev" || totals[0].Hours != 1.5 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

var _ clock.Clock = (*stepClock)(nil)

func TestClockingWorksWithUnusableDatabasePath(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}
	cfg.DBPath = filepath.Join(blocker, "timeclock.db")

	clk := &stepClock{now: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.Local)}
	app, err := newApp(cfg, logging.Discard(), clk)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	ctx := context.Background()
	if _, err := app.TimelogCLI.ClockIn(ctx); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	clk.now = clk.now.Add(time.Hour)
	if _, err := app.TimelogCLI.ClockOut(ctx, "dev"); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if _, err := app.TimelogCLI.CategoryTotals(ctx); err == nil {
		t.Fatalf("category totals must report the unusable database")
	}
}
