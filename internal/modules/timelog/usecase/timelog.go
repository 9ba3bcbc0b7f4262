package usecase

import (
	"context"
	"fmt"
	"strings"

	"timeclock/internal/modules/timelog/domain"
	timelogdto "timeclock/internal/modules/timelog/dto"
	timelogin "timeclock/internal/modules/timelog/port/in"
	"timeclock/internal/modules/timelog/service"
	apperrors "timeclock/internal/platform/errors"
)

type Interactor struct {
	svc *service.TimelogService
}

func NewInteractor(svc *service.TimelogService) timelogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ClockIn(ctx context.Context) (timelogdto.ClockInOutput, error) {
	_, _, found, err := i.svc.Current(ctx)
	if err != nil {
		return timelogdto.ClockInOutput{}, err
	}
	if found {
		return timelogdto.ClockInOutput{}, apperrors.ErrEntryOpen
	}
	startedAt, err := i.svc.Open(ctx)
	if err != nil {
		return timelogdto.ClockInOutput{}, err
	}
	return timelogdto.ClockInOutput{StartedAt: startedAt, Line: domain.FormatOpen(startedAt)}, nil
}

func (i *Interactor) ClockOut(ctx context.Context, input timelogdto.ClockOutInput) (timelogdto.ClockOutOutput, error) {
	category := strings.TrimSpace(input.Category)
	if strings.ContainsAny(category, "\r\n") {
		return timelogdto.ClockOutOutput{}, fmt.Errorf("%w: category must be a single line", apperrors.ErrInvalidInput)
	}
	current, open, found, err := i.svc.Current(ctx)
	if err != nil {
		return timelogdto.ClockOutOutput{}, err
	}
	if !found {
		return timelogdto.ClockOutOutput{}, apperrors.ErrNoOpenEntry
	}
	endedAt, err := i.svc.Close(ctx, current, category)
	if err != nil {
		return timelogdto.ClockOutOutput{}, err
	}
	if category == "" {
		category = domain.NoCategory
	}
	hours := endedAt.Sub(current.Start).Hours()
	return timelogdto.ClockOutOutput{
		Category:  category,
		StartedAt: current.Start,
		EndedAt:   endedAt,
		Hours:     hours,
		DayHours:  current.Hours - open + hours,
	}, nil
}

func (i *Interactor) Current(ctx context.Context) (timelogdto.CurrentOutput, error) {
	current, open, found, err := i.svc.Current(ctx)
	if err != nil {
		return timelogdto.CurrentOutput{}, err
	}
	if !found {
		return timelogdto.CurrentOutput{}, apperrors.ErrNoOpenEntry
	}
	return timelogdto.CurrentOutput{Entry: mapEntry(current), Hours: current.Hours, OpenHours: open}, nil
}

func (i *Interactor) Entries(ctx context.Context) ([]timelogdto.EntryOutput, error) {
	entries, err := i.svc.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]timelogdto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapEntry(entry))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (timelogdto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return timelogdto.ReindexOutput{}, err
	}
	return timelogdto.ReindexOutput{Entries: n}, nil
}

func (i *Interactor) CategoryTotals(ctx context.Context) ([]timelogdto.CategoryTotalOutput, error) {
	totals, err := i.svc.CategoryTotals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]timelogdto.CategoryTotalOutput, 0, len(totals))
	for _, item := range totals {
		out = append(out, timelogdto.CategoryTotalOutput{Category: item.Category, Hours: item.Hours, Entries: item.Entries})
	}
	return out, nil
}

func mapEntry(entry domain.TimeEntry) timelogdto.EntryOutput {
	return timelogdto.EntryOutput{
		Index:        entry.Index,
		Date:         entry.Date,
		DayOfWeek:    entry.DayOfWeek,
		Category:     entry.Category,
		Start:        entry.Start,
		End:          entry.End,
		Hours:        entry.Hours,
		IsCurrent:    entry.IsCurrent,
		Week:         entry.Week.String(),
		YearAndMonth: entry.YearAndMonth.String(),
		Raw:          entry.Raw,
	}
}
