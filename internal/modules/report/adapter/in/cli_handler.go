package in

import (
	"context"

	reportdto "timeclock/internal/modules/report/dto"
	reportin "timeclock/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Days(ctx context.Context) ([]reportdto.DayOutput, error) {
	return h.usecase.Days(ctx)
}

func (h CLIHandler) CurrentWeek(ctx context.Context) (reportdto.GroupOutput, error) {
	return h.usecase.CurrentWeek(ctx)
}

func (h CLIHandler) Weeks(ctx context.Context) (reportdto.WeekGroupOutput, error) {
	return h.usecase.Weeks(ctx)
}

func (h CLIHandler) Months(ctx context.Context) (reportdto.GroupOutput, error) {
	return h.usecase.Months(ctx)
}

func (h CLIHandler) Years(ctx context.Context) (reportdto.GroupOutput, error) {
	return h.usecase.Years(ctx)
}
