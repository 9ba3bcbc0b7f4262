package dto

import "time"

type CategoryHoursOutput struct {
	Category string
	Hours    float64
}

type BucketOutput struct {
	Key        string
	Label      string
	Categories []CategoryHoursOutput
	Total      float64
}

type GroupOutput struct {
	Buckets []BucketOutput
	Total   float64
}

// WeekBucketOutput is a week bucket with its calendar span.
type WeekBucketOutput struct {
	BucketOutput
	Year  int
	Start time.Time
	End   time.Time
}

type WeekGroupOutput struct {
	Weeks []WeekBucketOutput
	Total float64
}

type DayOutput struct {
	Date      time.Time
	DayOfWeek string
	Hours     float64
	IsCurrent bool
	Raw       string
}

type SummaryWeekOutput struct {
	Week   string
	Start  time.Time
	Days   [7]float64
	Worked [7]bool
	Total  float64
}

type SummaryMonthOutput struct {
	Month string
	Name  string
	Hours float64
}

type SummaryOutput struct {
	Weekdays [7]string
	Weeks    []SummaryWeekOutput
	Months   []SummaryMonthOutput
	Total    float64
}
