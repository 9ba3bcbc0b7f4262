package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekKey identifies an ISO week. Its string form is "<year>W<week>", e.g. "2024W03".
type WeekKey struct {
	Year int
	Week int
}

func WeekOf(t time.Time) WeekKey {
	year, week := t.ISOWeek()
	return WeekKey{Year: year, Week: week}
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%04dW%02d", k.Year, k.Week)
}

// Start returns midnight of the Monday opening the week.
func (k WeekKey) Start(loc *time.Location) time.Time {
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(k.Week-1)*7)
}

// End returns midnight of the Sunday closing the week.
func (k WeekKey) End(loc *time.Location) time.Time {
	return k.Start(loc).AddDate(0, 0, 6)
}

func ParseWeekKey(s string) (WeekKey, error) {
	yearPart, weekPart, ok := strings.Cut(s, "W")
	if !ok || len(yearPart) != 4 || len(weekPart) != 2 {
		return WeekKey{}, fmt.Errorf("invalid week key %q", s)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return WeekKey{}, fmt.Errorf("invalid week key %q: %w", s, err)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > 53 {
		return WeekKey{}, fmt.Errorf("invalid week key %q", s)
	}
	return WeekKey{Year: year, Week: week}, nil
}

// MonthKey identifies a calendar month. Its string form is "<year>-<Mon>", e.g. "2024-Jan".
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%d-%s", k.Year, k.Month.String()[:3])
}
