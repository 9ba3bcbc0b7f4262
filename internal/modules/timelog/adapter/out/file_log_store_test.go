package out_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	timelogout "timeclock/internal/modules/timelog/adapter/out"
	apperrors "timeclock/internal/platform/errors"
	"timeclock/internal/platform/logging"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hours.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(b)
}

func TestParseMissingFileYieldsNoEntries(t *testing.T) {
	t.Parallel()
	store := timelogout.NewFileLogStore(filepath.Join(t.TempDir(), "absent.txt"), logging.Discard())
	entries, err := store.Parse(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestParseSkipsMalformedLinesWithNotice(t *testing.T) {
	t.Parallel()
	path := writeLog(t, "# header\n\nMon Jan 08 2024  09:00-17:30 work\nthis is random text\n  indented note\n")
	logs := &bytes.Buffer{}
	store := timelogout.NewFileLogStore(path, slog.New(slog.NewTextHandler(logs, nil)))
	entries, err := store.Parse(context.Background(), time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Hours != 8.5 || entries[0].Category != "work" || entries[0].Index != 0 {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
	if !strings.Contains(logs.String(), "skipping suspicious line") || !strings.Contains(logs.String(), "this is random text") {
		t.Fatalf("expected malformed line notice, got %q", logs.String())
	}
}

func TestCloseEntryRoundTripsEveryOtherLine(t *testing.T) {
	t.Parallel()
	original := strings.Join([]string{
		"# January",
		"Mon Jan 08 2024  09:00-12:00 work",
		"",
		"this is random text",
		"   indented",
		"Mon Jan 08 2024  13:00-",
		"",
	}, "\n")
	path := writeLog(t, original)
	store := timelogout.NewFileLogStore(path, logging.Discard())
	at := time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC)
	if err := store.CloseEntry(context.Background(), "development", at); err != nil {
		t.Fatalf("close entry: %v", err)
	}
	want := strings.Replace(original, "13:00-", "13:00-17:30 development", 1)
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected rewrite:\n%q\nwant\n%q", got, want)
	}
	entries, err := store.Parse(context.Background(), at)
	if err != nil {
		t.Fatalf("parse after close: %v", err)
	}
	for _, e := range entries {
		if e.IsCurrent {
			t.Fatalf("no entry should be open after close: %+v", e)
		}
	}
	if entries[1].Hours != 4.5 || entries[1].Category != "development" {
		t.Fatalf("unexpected closed entry %+v", entries[1])
	}
}

func TestCloseEntryWithoutOpenEntryLeavesFileUntouched(t *testing.T) {
	t.Parallel()
	original := "Mon Jan 08 2024  09:00-12:00 work\nMon Jan 08 2024  13:00-14:00\n"
	path := writeLog(t, original)
	store := timelogout.NewFileLogStore(path, logging.Discard())
	err := store.CloseEntry(context.Background(), "x", time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC))
	if !errors.Is(err, apperrors.ErrNoOpenEntry) {
		t.Fatalf("expected no open entry error, got %v", err)
	}
	if got := readLog(t, path); got != original {
		t.Fatalf("file must be untouched, got %q", got)
	}
}

func TestOpenEntryAppendsAndRepairsMissingNewline(t *testing.T) {
	t.Parallel()
	path := writeLog(t, "Mon Jan 08 2024  09:00-12:00 work")
	store := timelogout.NewFileLogStore(path, logging.Discard())
	at := time.Date(2024, 1, 9, 8, 5, 0, 0, time.UTC)
	if err := store.OpenEntry(context.Background(), at); err != nil {
		t.Fatalf("open entry: %v", err)
	}
	want := "Mon Jan 08 2024  09:00-12:00 work\nTue Jan 09 2024  08:05-\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected log %q", got)
	}

	fresh := filepath.Join(t.TempDir(), "new.txt")
	freshStore := timelogout.NewFileLogStore(fresh, logging.Discard())
	if err := freshStore.OpenEntry(context.Background(), at); err != nil {
		t.Fatalf("open entry on new file: %v", err)
	}
	if got := readLog(t, fresh); got != "Tue Jan 09 2024  08:05-\n" {
		t.Fatalf("unexpected new log %q", got)
	}
}

func TestCloseEntryRewriteIsByteIdenticalForClosedLog(t *testing.T) {
	t.Parallel()
	original := "Mon Jan 08 2024  09:00-12:00 work\nTue Jan 09 2024  10:00-11:15 admin\n"
	path := writeLog(t, original)
	store := timelogout.NewFileLogStore(path, logging.Discard())
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	if err := store.OpenEntry(context.Background(), at); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.CloseEntry(context.Background(), "", at.Add(90*time.Minute)); err != nil {
		t.Fatalf("close: %v", err)
	}
	want := original + "Wed Jan 10 2024  09:00-10:30\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected log %q", got)
	}
	entries, err := store.Parse(context.Background(), at)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[2].Category != "no-category" || entries[2].Hours != 1.5 {
		t.Fatalf("unexpected entry %+v", entries[2])
	}
}

func TestCloseEntryKeepsCRLFTerminators(t *testing.T) {
	t.Parallel()
	original := "# note\r\nMon Jan 08 2024  09:00-12:00 work\r\nstray text\r\nMon Jan 08 2024  13:00-\r\n"
	path := writeLog(t, original)
	store := timelogout.NewFileLogStore(path, logging.Discard())
	at := time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)
	if err := store.CloseEntry(context.Background(), "dev", at); err != nil {
		t.Fatalf("close entry: %v", err)
	}
	want := "# note\r\nMon Jan 08 2024  09:00-12:00 work\r\nstray text\r\nMon Jan 08 2024  13:00-17:00 dev\r\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected rewrite:\n%q\nwant\n%q", got, want)
	}

	entries, err := store.Parse(context.Background(), at)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 || entries[0].Category != "work" || entries[1].Category != "dev" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestCloseEntryKeepsUnterminatedLastLine(t *testing.T) {
	t.Parallel()
	path := writeLog(t, "Mon Jan 08 2024  09:00-12:00 work\n# trailing comment")
	store := timelogout.NewFileLogStore(path, logging.Discard())
	if err := store.OpenEntry(context.Background(), time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("open entry: %v", err)
	}
	if err := store.CloseEntry(context.Background(), "", time.Date(2024, 1, 8, 14, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("close entry: %v", err)
	}
	want := "Mon Jan 08 2024  09:00-12:00 work\n# trailing comment\nMon Jan 08 2024  13:00-14:00\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected log %q", got)
	}
}

func TestOpenEntryFollowsCRLFConvention(t *testing.T) {
	t.Parallel()
	path := writeLog(t, "Mon Jan 08 2024  09:00-12:00 work\r\n")
	store := timelogout.NewFileLogStore(path, logging.Discard())
	if err := store.OpenEntry(context.Background(), time.Date(2024, 1, 9, 8, 5, 0, 0, time.UTC)); err != nil {
		t.Fatalf("open entry: %v", err)
	}
	want := "Mon Jan 08 2024  09:00-12:00 work\r\nTue Jan 09 2024  08:05-\r\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("unexpected log %q", got)
	}
}

func TestParseSkipsOverlongLine(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 2<<20)
	path := writeLog(t, long+"\nMon Jan 08 2024  09:00-10:00 work\n")
	logs := bytes.Buffer{}
	store := timelogout.NewFileLogStore(path, slog.New(slog.NewTextHandler(&logs, nil)))
	entries, err := store.Parse(context.Background(), time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Hours != 1 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if !strings.Contains(logs.String(), "skipping suspicious line") {
		t.Fatalf("expected the long line to be reported")
	}
}
