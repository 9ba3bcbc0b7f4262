package in

import (
	"context"

	"timeclock/internal/modules/timelog/dto"
)

type Usecase interface {
	ClockIn(ctx context.Context) (dto.ClockInOutput, error)
	ClockOut(ctx context.Context, input dto.ClockOutInput) (dto.ClockOutOutput, error)
	Current(ctx context.Context) (dto.CurrentOutput, error)
	Entries(ctx context.Context) ([]dto.EntryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	CategoryTotals(ctx context.Context) ([]dto.CategoryTotalOutput, error)
}
