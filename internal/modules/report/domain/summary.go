package domain

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	timelogdomain "timeclock/internal/modules/timelog/domain"
)

// Weekdays lists the summary columns, Monday first to match ISO weeks.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayColumn maps a weekday onto its Weekdays index.
func WeekdayColumn(day time.Weekday) int {
	return (int(day) + 6) % 7
}

type SummaryWeek struct {
	Week   timelogdomain.WeekKey
	Days   [7]float64
	Worked [7]bool
	Total  float64
}

type SummaryMonth struct {
	Month timelogdomain.MonthKey
	Hours float64
}

type SummaryReport struct {
	Weeks  []SummaryWeek
	Months []SummaryMonth
	Total  float64
}

// Summary lays daily totals into week rows and adds month and grand totals. Weeks and
// months appear in first-encounter order.
func Summary(entries []timelogdomain.TimeEntry) SummaryReport {
	weeks := orderedmap.New[timelogdomain.WeekKey, SummaryWeek]()
	months := orderedmap.New[timelogdomain.MonthKey, float64]()
	report := SummaryReport{}

	for _, day := range GroupByDay(entries) {
		column := WeekdayColumn(day.Date.Weekday())
		upsert(weeks, day.Week, func(row SummaryWeek, present bool) SummaryWeek {
			if !present {
				row.Week = day.Week
			}
			row.Days[column] += day.Hours
			row.Worked[column] = true
			row.Total += day.Hours
			return row
		})
		upsert(months, day.YearAndMonth, func(hours float64, _ bool) float64 {
			return hours + day.Hours
		})
		report.Total += day.Hours
	}

	for week := weeks.Oldest(); week != nil; week = week.Next() {
		report.Weeks = append(report.Weeks, week.Value)
	}
	for month := months.Oldest(); month != nil; month = month.Next() {
		report.Months = append(report.Months, SummaryMonth{Month: month.Key, Hours: month.Value})
	}
	return report
}
