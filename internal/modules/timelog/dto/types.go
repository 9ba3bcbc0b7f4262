package dto

import "time"

type EntryOutput struct {
	Index        int
	Date         time.Time
	DayOfWeek    string
	Category     string
	Start        time.Time
	End          time.Time
	Hours        float64
	IsCurrent    bool
	Week         string
	YearAndMonth string
	Raw          string
}

type ClockInOutput struct {
	StartedAt time.Time
	Line      string
}

type ClockOutInput struct {
	Category string
}

type ClockOutOutput struct {
	Category  string
	StartedAt time.Time
	EndedAt   time.Time
	Hours     float64
	DayHours  float64
}

// CurrentOutput describes the open entry. Hours includes the closed entries of the same
// day; OpenHours is the live segment alone.
type CurrentOutput struct {
	Entry     EntryOutput
	Hours     float64
	OpenHours float64
}

type ReindexOutput struct {
	Entries int
}

type CategoryTotalOutput struct {
	Category string
	Hours    float64
	Entries  int
}
