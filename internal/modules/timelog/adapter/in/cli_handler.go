package in

import (
	"context"

	timelogdto "timeclock/internal/modules/timelog/dto"
	timelogin "timeclock/internal/modules/timelog/port/in"
)

type CLIHandler struct {
	usecase timelogin.Usecase
}

func NewCLIHandler(usecase timelogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ClockIn(ctx context.Context) (timelogdto.ClockInOutput, error) {
	return h.usecase.ClockIn(ctx)
}

func (h CLIHandler) ClockOut(ctx context.Context, category string) (timelogdto.ClockOutOutput, error) {
	return h.usecase.ClockOut(ctx, timelogdto.ClockOutInput{Category: category})
}

func (h CLIHandler) Current(ctx context.Context) (timelogdto.CurrentOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Entries(ctx context.Context) ([]timelogdto.EntryOutput, error) {
	return h.usecase.Entries(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (timelogdto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) CategoryTotals(ctx context.Context) ([]timelogdto.CategoryTotalOutput, error) {
	return h.usecase.CategoryTotals(ctx)
}
