package domain

import "time"

const (
	NoCategory = "no-category"

	// MergedRaw replaces Raw when several source lines collapse into one entry.
	MergedRaw = "N/A"
)

// TimeEntry is one parsed clock-in/clock-out interval. It is rebuilt on every parse;
// the text line stays the durable form.
type TimeEntry struct {
	Index        int
	Date         time.Time
	DayOfWeek    string
	Category     string
	Start        time.Time
	End          time.Time
	Hours        float64
	IsCurrent    bool
	Week         WeekKey
	YearAndMonth MonthKey
	Raw          string
}

func (e TimeEntry) Year() int {
	return e.Date.Year()
}

// SameDay reports whether both entries share a calendar day.
func (e TimeEntry) SameDay(other time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// NewEntry derives the calendar fields and hours of a record. Open records are measured
// against now and never report negative hours.
func NewEntry(index int, rec Record, now time.Time) TimeEntry {
	var end time.Time
	current := rec.End == nil
	if current {
		end = now.In(rec.Start.Location())
	} else {
		end = *rec.End
	}
	hours := end.Sub(rec.Start).Hours()
	if current && hours < 0 {
		hours = 0
	}
	category := rec.Category
	if category == "" {
		category = NoCategory
	}
	return TimeEntry{
		Index:        index,
		Date:         rec.Date,
		DayOfWeek:    rec.Date.Weekday().String()[:3],
		Category:     category,
		Start:        rec.Start,
		End:          end,
		Hours:        hours,
		IsCurrent:    current,
		Week:         WeekOf(rec.Date),
		YearAndMonth: MonthOf(rec.Date),
		Raw:          rec.Raw,
	}
}

// CategoryTotal is the summed hours of one category across the whole log.
type CategoryTotal struct {
	Category string
	Hours    float64
	Entries  int
}
