package usecase

import (
	"context"
	"fmt"

	"timeclock/internal/modules/report/domain"
	reportdto "timeclock/internal/modules/report/dto"
	reportin "timeclock/internal/modules/report/port/in"
	"timeclock/internal/modules/report/service"
	timelogdomain "timeclock/internal/modules/timelog/domain"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	report, now, err := i.svc.Summary(ctx)
	if err != nil {
		return reportdto.SummaryOutput{}, err
	}
	out := reportdto.SummaryOutput{Weekdays: domain.Weekdays, Total: report.Total}
	for _, week := range report.Weeks {
		out.Weeks = append(out.Weeks, reportdto.SummaryWeekOutput{
			Week:   week.Week.String(),
			Start:  week.Week.Start(now.Location()),
			Days:   week.Days,
			Worked: week.Worked,
			Total:  week.Total,
		})
	}
	for _, month := range report.Months {
		out.Months = append(out.Months, reportdto.SummaryMonthOutput{
			Month: month.Month.String(),
			Name:  month.Month.Month.String(),
			Hours: month.Hours,
		})
	}
	return out, nil
}

func (i *Interactor) Days(ctx context.Context) ([]reportdto.DayOutput, error) {
	days, err := i.svc.Days(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]reportdto.DayOutput, 0, len(days))
	for _, day := range days {
		out = append(out, reportdto.DayOutput{
			Date:      day.Date,
			DayOfWeek: day.DayOfWeek,
			Hours:     day.Hours,
			IsCurrent: day.IsCurrent,
			Raw:       day.Raw,
		})
	}
	return out, nil
}

func (i *Interactor) CurrentWeek(ctx context.Context) (reportdto.GroupOutput, error) {
	grouping, _, err := i.svc.CurrentWeek(ctx)
	if err != nil {
		return reportdto.GroupOutput{}, err
	}
	return mapGrouping(grouping), nil
}

func (i *Interactor) Weeks(ctx context.Context) (reportdto.WeekGroupOutput, error) {
	grouping, now, err := i.svc.Weeks(ctx)
	if err != nil {
		return reportdto.WeekGroupOutput{}, err
	}
	out := reportdto.WeekGroupOutput{Total: grouping.Total()}
	for _, bucket := range grouping.Buckets {
		key, err := timelogdomain.ParseWeekKey(bucket.Key)
		if err != nil {
			return reportdto.WeekGroupOutput{}, err
		}
		start := key.Start(now.Location())
		end := key.End(now.Location())
		mapped := mapBucket(bucket)
		mapped.Label = fmt.Sprintf("%s-%02d thru %s-%02d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day())
		out.Weeks = append(out.Weeks, reportdto.WeekBucketOutput{
			BucketOutput: mapped,
			Year:         key.Year,
			Start:        start,
			End:          end,
		})
	}
	return out, nil
}

func (i *Interactor) Months(ctx context.Context) (reportdto.GroupOutput, error) {
	grouping, err := i.svc.Months(ctx)
	if err != nil {
		return reportdto.GroupOutput{}, err
	}
	return mapGrouping(grouping), nil
}

func (i *Interactor) Years(ctx context.Context) (reportdto.GroupOutput, error) {
	grouping, err := i.svc.Years(ctx)
	if err != nil {
		return reportdto.GroupOutput{}, err
	}
	return mapGrouping(grouping), nil
}

func mapGrouping(grouping domain.Grouping) reportdto.GroupOutput {
	out := reportdto.GroupOutput{Total: grouping.Total()}
	for _, bucket := range grouping.Buckets {
		out.Buckets = append(out.Buckets, mapBucket(bucket))
	}
	return out
}

func mapBucket(bucket domain.Bucket) reportdto.BucketOutput {
	out := reportdto.BucketOutput{Key: bucket.Key, Label: bucket.Key, Total: bucket.Total()}
	for _, c := range bucket.Categories {
		out.Categories = append(out.Categories, reportdto.CategoryHoursOutput{Category: c.Category, Hours: c.Hours})
	}
	return out
}
