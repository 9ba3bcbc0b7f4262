// Package render prints report data as the fixed-width text tables of the CLI.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	reportdto "timeclock/internal/modules/report/dto"
	timelogdto "timeclock/internal/modules/timelog/dto"
	"timeclock/internal/platform/money"
	"timeclock/internal/ui/theme"
)

// Printer writes reports to one writer with one hourly wage.
type Printer struct {
	w    io.Writer
	wage decimal.Decimal
}

func NewPrinter(w io.Writer, wage decimal.Decimal) Printer {
	return Printer{w: w, wage: wage}
}

func (p Printer) gross(hours float64) string {
	return money.Format(money.Gross(hours, p.wage))
}

func (p Printer) interval(title string, hours float64) string {
	return fmt.Sprintf("%s\t %6.2f %8s", title, hours, p.gross(hours))
}

func (p Printer) Current(out timelogdto.CurrentOutput) {
	_, _ = fmt.Fprintln(p.w, p.interval("current", out.Hours))
}

func (p Printer) ClockedOut(out timelogdto.ClockOutOutput) {
	_, _ = fmt.Fprintln(p.w, p.interval(out.Category, out.Hours))
	_, _ = fmt.Fprintln(p.w, p.interval("today", out.DayHours))
}

func (p Printer) Summary(out reportdto.SummaryOutput) {
	_, _ = fmt.Fprintf(p.w, "\n%s\n\n", theme.Title.Render("Summary Report"))

	_, _ = fmt.Fprintf(p.w, "%12s", out.Weekdays[0])
	for _, day := range out.Weekdays[1:] {
		_, _ = fmt.Fprintf(p.w, " %5s", day)
	}
	_, _ = fmt.Fprintf(p.w, " %8s %8s\n", "Total", "Wage")

	for _, week := range out.Weeks {
		_, _ = fmt.Fprintf(p.w, "%s %02d", week.Start.Format("Jan"), week.Start.Day())
		for col, hours := range week.Days {
			if week.Worked[col] {
				_, _ = fmt.Fprintf(p.w, " %5.2f", hours)
			} else {
				_, _ = fmt.Fprintf(p.w, " %5s", "-")
			}
		}
		_, _ = fmt.Fprintf(p.w, " %8.2f %8s\n", week.Total, p.gross(week.Total))
	}

	_, _ = fmt.Fprintln(p.w)
	for _, month := range out.Months {
		_, _ = fmt.Fprintf(p.w, "%-11s %7.2f %8s\n", monthLabel(month), month.Hours, p.gross(month.Hours))
	}
	grand := fmt.Sprintf("%-11s %7.2f %8s", "Grand Total", out.Total, p.gross(out.Total))
	_, _ = fmt.Fprintln(p.w, theme.Total.Render(grand))
}

// monthLabel prints the month name, qualified by year when it is not the only part of the key.
func monthLabel(month reportdto.SummaryMonthOutput) string {
	year, _, ok := strings.Cut(month.Month, "-")
	if !ok {
		return month.Name
	}
	return month.Name[:3] + " " + year
}

func (p Printer) CurrentWeek(out reportdto.GroupOutput) {
	_, _ = fmt.Fprintf(p.w, "%s\n\n", theme.Title.Render("Current Week"))
	for _, bucket := range out.Buckets {
		_, _ = fmt.Fprintf(p.w, "%s\n", bucket.Label)
		for _, c := range bucket.Categories {
			_, _ = fmt.Fprintf(p.w, "%5.2fh %s \n", c.Hours, c.Category)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

func (p Printer) Weeks(out reportdto.WeekGroupOutput) {
	year := 0
	for _, week := range out.Weeks {
		if week.Year != year {
			year = week.Year
			_, _ = fmt.Fprintf(p.w, "%s\n", theme.Title.Render(fmt.Sprint(year)))
		}
		_, _ = fmt.Fprintf(p.w, "%s\n", week.Label)
		for _, c := range week.Categories {
			_, _ = fmt.Fprintf(p.w, "%5.2fh %s \n", c.Hours, c.Category)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

func (p Printer) Months(out reportdto.GroupOutput) {
	for _, bucket := range out.Buckets {
		_, _ = fmt.Fprintf(p.w, "\n%s\n", theme.Title.Render(bucket.Label))
		for _, c := range bucket.Categories {
			_, _ = fmt.Fprintf(p.w, "%6.2f %s\n", c.Hours, c.Category)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

func (p Printer) Years(out reportdto.GroupOutput) {
	for _, bucket := range out.Buckets {
		_, _ = fmt.Fprintf(p.w, "\n%s\n", theme.Title.Render(bucket.Label))
		for _, c := range bucket.Categories {
			_, _ = fmt.Fprintf(p.w, "%7.2f %s \n", c.Hours, c.Category)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

func (p Printer) Categories(totals []timelogdto.CategoryTotalOutput) {
	if len(totals) == 0 {
		_, _ = fmt.Fprintln(p.w, "no entries projected, run reindex first")
		return
	}
	for _, item := range totals {
		_, _ = fmt.Fprintf(p.w, "%7.2f %8s %s (%d entries)\n", item.Hours, p.gross(item.Hours), item.Category, item.Entries)
	}
}

func (p Printer) Days(days []reportdto.DayOutput) {
	for _, day := range days {
		marker := " "
		if day.IsCurrent {
			marker = "*"
		}
		_, _ = fmt.Fprintf(p.w, "%s %s %6.2f %8s\n", marker, day.Date.Format("Mon Jan 02 2006"), day.Hours, p.gross(day.Hours))
	}
}
