package out

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"timeclock/internal/modules/timelog/domain"
	timelogout "timeclock/internal/modules/timelog/port/out"
	apperrors "timeclock/internal/platform/errors"
)

type FileLogStore struct {
	path   string
	logger *slog.Logger
}

func NewFileLogStore(path string, logger *slog.Logger) timelogout.LogStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLogStore{path: path, logger: logger.With("component", "logstore")}
}

func (s *FileLogStore) OpenEntry(_ context.Context, at time.Time) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open time log: %w", err)
	}
	defer f.Close()

	prefix, eol, err := lineEnding(f)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s%s%s", prefix, domain.FormatOpen(at), eol); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// lineEnding inspects the tail of f. prefix is the terminator to write first when the last
// line is unterminated; eol follows the file's existing "\r\n" or "\n" convention.
func lineEnding(f *os.File) (prefix, eol string, err error) {
	info, err := f.Stat()
	if err != nil {
		return "", "", fmt.Errorf("stat time log: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return "", "\n", nil
	}
	n := int64(2)
	if size < n {
		n = size
	}
	tail := make([]byte, n)
	if _, err := f.ReadAt(tail, size-n); err != nil && err != io.EOF {
		return "", "", fmt.Errorf("read time log tail: %w", err)
	}
	switch {
	case bytes.HasSuffix(tail, []byte("\r\n")):
		return "", "\r\n", nil
	case bytes.HasSuffix(tail, []byte("\n")):
		return "", "\n", nil
	default:
		return "\n", "\n", nil
	}
}

// CloseEntry rewrites the whole file. Every line is copied through from its raw text and
// original terminator except the first open entry, which gains the end time and category.
func (s *FileLogStore) CloseEntry(_ context.Context, category string, at time.Time) error {
	lines, err := s.readLines(at.Location())
	if err != nil {
		return err
	}
	closed := false
	buf := bytes.Buffer{}
	for _, line := range lines {
		if !closed && line.Kind == domain.LineEntry && line.Record.End == nil {
			buf.WriteString(domain.FormatClosed(line.Raw, at, category))
			closed = true
		} else {
			buf.WriteString(line.Raw)
		}
		buf.WriteString(line.EOL)
	}
	if !closed {
		return apperrors.ErrNoOpenEntry
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewrite time log: %w", err)
	}
	return nil
}

// Parse returns entries in file order. Malformed lines are logged and skipped; a missing
// file means no entries yet.
func (s *FileLogStore) Parse(_ context.Context, now time.Time) ([]domain.TimeEntry, error) {
	lines, err := s.readLines(now.Location())
	if err != nil {
		return nil, err
	}
	entries := make([]domain.TimeEntry, 0, len(lines))
	for _, line := range lines {
		switch line.Kind {
		case domain.LineEntry:
			entries = append(entries, domain.NewEntry(len(entries), line.Record, now))
		case domain.LineMalformed:
			s.logger.Warn("skipping suspicious line", "line", line.Number, "text", line.Raw, "error", line.Err)
		}
	}
	return entries, nil
}

func (s *FileLogStore) readLines(loc *time.Location) ([]domain.Line, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open time log: %w", err)
	}
	defer f.Close()

	var lines []domain.Line
	reader := bufio.NewReader(f)
	for number := 1; ; number++ {
		text, err := reader.ReadString('\n')
		if text != "" {
			raw, eol := domain.SplitEOL(text)
			line := domain.ParseLine(number, raw, loc)
			line.EOL = eol
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read time log: %w", err)
		}
	}
}
