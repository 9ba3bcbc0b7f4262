package in

import (
	"context"

	reportdto "timeclock/internal/modules/report/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (reportdto.SummaryOutput, error)
	Days(ctx context.Context) ([]reportdto.DayOutput, error)
	CurrentWeek(ctx context.Context) (reportdto.GroupOutput, error)
	Weeks(ctx context.Context) (reportdto.WeekGroupOutput, error)
	Months(ctx context.Context) (reportdto.GroupOutput, error)
	Years(ctx context.Context) (reportdto.GroupOutput, error)
}
