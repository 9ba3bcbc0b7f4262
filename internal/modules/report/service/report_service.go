package service

import (
	"context"
	"time"

	"timeclock/internal/modules/report/domain"
	reportout "timeclock/internal/modules/report/port/out"
	timelogdomain "timeclock/internal/modules/timelog/domain"
	"timeclock/internal/platform/clock"
)

type ReportService struct {
	clock  clock.Clock
	source reportout.EntrySource
}

func NewReportService(clock clock.Clock, source reportout.EntrySource) *ReportService {
	return &ReportService{clock: clock, source: source}
}

func (s *ReportService) load(ctx context.Context) ([]timelogdomain.TimeEntry, time.Time, error) {
	now := s.clock.Now()
	entries, err := s.source.Entries(ctx, now)
	if err != nil {
		return nil, time.Time{}, err
	}
	return entries, now, nil
}

func (s *ReportService) Summary(ctx context.Context) (domain.SummaryReport, time.Time, error) {
	entries, now, err := s.load(ctx)
	if err != nil {
		return domain.SummaryReport{}, time.Time{}, err
	}
	return domain.Summary(entries), now, nil
}

func (s *ReportService) Days(ctx context.Context) ([]timelogdomain.TimeEntry, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByDay(entries), nil
}

func (s *ReportService) CurrentWeek(ctx context.Context) (domain.Grouping, time.Time, error) {
	entries, now, err := s.load(ctx)
	if err != nil {
		return domain.Grouping{}, time.Time{}, err
	}
	return domain.CurrentWeekGroupByDayAndCategory(entries, now), now, nil
}

func (s *ReportService) Weeks(ctx context.Context) (domain.Grouping, time.Time, error) {
	entries, now, err := s.load(ctx)
	if err != nil {
		return domain.Grouping{}, time.Time{}, err
	}
	return domain.GroupByWeekAndCategory(entries), now, nil
}

func (s *ReportService) Months(ctx context.Context) (domain.Grouping, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		return domain.Grouping{}, err
	}
	return domain.GroupByMonthAndCategory(entries), nil
}

func (s *ReportService) Years(ctx context.Context) (domain.Grouping, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		return domain.Grouping{}, err
	}
	return domain.GroupByYearAndCategory(entries), nil
}
