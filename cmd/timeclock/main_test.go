package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"timeclock/internal/platform/config"
)

// setupEnv points every setting at a fresh temp dir and returns the log path.
func setupEnv(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	logPath := filepath.Join(home, "hours.txt")
	if content != "" {
		if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}
	t.Setenv("HOME", home)
	t.Setenv(config.EnvFile, logPath)
	t.Setenv(config.EnvWage, "20")
	t.Setenv(config.EnvBackupDir, filepath.Join(home, "backups"))
	t.Setenv(config.EnvDBPath, filepath.Join(home, "timeclock.db"))
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "text")
	return logPath
}

func execute(args ...string) (int, string, string) {
	stdout, stderr := bytes.Buffer{}, bytes.Buffer{}
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInThenOutWithCategoryFlag(t *testing.T) {
	logPath := setupEnv(t, "")

	code, stdout, stderr := execute("in")
	if code != 0 || !strings.Contains(stdout, "clocking in") {
		t.Fatalf("in: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
	code, stdout, stderr = execute("out", "-c", "dev")
	if code != 0 || !strings.Contains(stdout, "clocking out") || !strings.Contains(stdout, "dev\t") {
		t.Fatalf("out: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}

	payload, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	closed := regexp.MustCompile(`^\w{3} \w{3} \d{2} \d{4}  \d{2}:\d{2}-\d{2}:\d{2} dev\n$`)
	if !closed.Match(payload) {
		t.Fatalf("unexpected log %q", payload)
	}
}

func TestRootDefaultsToSummary(t *testing.T) {
	setupEnv(t, "Mon Jan 15 2024  09:00-11:30 dev\n")

	code, stdout, stderr := execute()
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	for _, want := range []string{"Summary Report", "Jan 15  2.50", "Grand Total    2.50    50.00"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("summary missing %q:\n%s", want, stdout)
		}
	}
}

func TestFailuresGoToStderrWithExitOne(t *testing.T) {
	setupEnv(t, "Mon Jan 15 2024  09:00-11:30 dev\n")

	code, _, stderr := execute("out")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "no current entry exists") {
		t.Fatalf("expected the error on stderr, got %q", stderr)
	}

	code, _, stderr = execute("bogus")
	if code != 1 || stderr == "" {
		t.Fatalf("unknown command: code=%d stderr=%q", code, stderr)
	}
}

func TestFileFlagOverridesEnvironment(t *testing.T) {
	setupEnv(t, "")
	other := filepath.Join(t.TempDir(), "other.txt")
	if err := os.WriteFile(other, []byte("Mon Jan 15 2024  09:00-10:00 ops\n"), 0o644); err != nil {
		t.Fatalf("seed other log: %v", err)
	}

	code, stdout, stderr := execute("--file", other, "report", "year")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stdout, "2024") || !strings.Contains(stdout, "   1.00 ops \n") {
		t.Fatalf("unexpected year report %q", stdout)
	}
}

func TestCategoriesReflectTheLog(t *testing.T) {
	setupEnv(t, "Mon Jan 15 2024  09:00-11:00 work\nTue Jan 16 2024  09:00-12:00 work\n")

	code, stdout, stderr := execute("categories")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stdout, "   5.00   100.00 work (2 entries)") {
		t.Fatalf("unexpected categories output %q", stdout)
	}
}
