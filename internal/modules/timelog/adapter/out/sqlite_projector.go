package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timeclock/internal/modules/timelog/domain"
	timelogout "timeclock/internal/modules/timelog/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteEntryProjector struct {
	db *sql.DB
}

func NewSQLiteEntryProjector(dbPath string) (*SQLiteEntryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLiteEntryProjector{db: db}, nil
}

var _ timelogout.EntryProjector = (*SQLiteEntryProjector)(nil)

// LazySQLiteEntryProjector opens and migrates the database on first use. Commands that
// never touch the projection never create the database file.
type LazySQLiteEntryProjector struct {
	dbPath string

	once      sync.Once
	projector *SQLiteEntryProjector
	err       error
}

func NewLazySQLiteEntryProjector(dbPath string) *LazySQLiteEntryProjector {
	return &LazySQLiteEntryProjector{dbPath: dbPath}
}

var _ timelogout.EntryProjector = (*LazySQLiteEntryProjector)(nil)

func (l *LazySQLiteEntryProjector) open() (*SQLiteEntryProjector, error) {
	l.once.Do(func() {
		l.projector, l.err = NewSQLiteEntryProjector(l.dbPath)
	})
	return l.projector, l.err
}

func (l *LazySQLiteEntryProjector) ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error {
	projector, err := l.open()
	if err != nil {
		return err
	}
	return projector.ReplaceAll(ctx, entries)
}

func (l *LazySQLiteEntryProjector) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	projector, err := l.open()
	if err != nil {
		return nil, err
	}
	return projector.CategoryTotals(ctx)
}

// Close releases the database when it was opened. It is safe to call without prior use.
func (l *LazySQLiteEntryProjector) Close() error {
	if l.projector == nil {
		return nil
	}
	return l.projector.Close()
}

func (s *SQLiteEntryProjector) Close() error {
	return s.db.Close()
}

// ReplaceAll swaps the projected rows for entries in one transaction.
func (s *SQLiteEntryProjector) ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin projection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	const stmt = `
INSERT INTO entries (idx, day, weekday, category, started_at, ended_at, hours, is_current, week, year_month, raw)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	insert, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer insert.Close()

	for _, entry := range entries {
		current := 0
		if entry.IsCurrent {
			current = 1
		}
		_, err := insert.ExecContext(ctx,
			entry.Index,
			entry.Date.Format("2006-01-02"),
			entry.DayOfWeek,
			entry.Category,
			entry.Start.Format(time.RFC3339),
			entry.End.Format(time.RFC3339),
			entry.Hours,
			current,
			entry.Week.String(),
			entry.YearAndMonth.String(),
			entry.Raw,
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", entry.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit projection: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	const query = `
SELECT category, SUM(hours) AS total, COUNT(*) AS n
FROM entries
GROUP BY category
ORDER BY total DESC, category ASC;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		item := domain.CategoryTotal{}
		if err := rows.Scan(&item.Category, &item.Hours, &item.Entries); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}
