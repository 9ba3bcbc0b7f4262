// Package backup keeps a timestamped copy of the time log before each run.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Snapshot copies path into dir as "<basename>-<unix millis>" and returns the copy's path.
// A missing source yields an empty result and no error.
func Snapshot(path, dir string, at time.Time) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open log for backup: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	target := filepath.Join(dir, fmt.Sprintf("%s-%d", filepath.Base(path), at.UnixMilli()))
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}
	return target, nil
}

// Touch creates path empty when it does not exist yet. Existing files are left alone.
func Touch(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("touch log: %w", err)
	}
	return f.Close()
}
