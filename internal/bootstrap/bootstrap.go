package bootstrap

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	reportinadapter "timeclock/internal/modules/report/adapter/in"
	reportoutadapter "timeclock/internal/modules/report/adapter/out"
	reportservice "timeclock/internal/modules/report/service"
	reportusecase "timeclock/internal/modules/report/usecase"
	timeloginadapter "timeclock/internal/modules/timelog/adapter/in"
	timelogoutadapter "timeclock/internal/modules/timelog/adapter/out"
	timelogservice "timeclock/internal/modules/timelog/service"
	timelogusecase "timeclock/internal/modules/timelog/usecase"
	"timeclock/internal/platform/backup"
	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/config"
	uiapp "timeclock/internal/ui/app"
)

type App struct {
	Config     config.Config
	Logger     *slog.Logger
	TimelogCLI timeloginadapter.CLIHandler
	ReportCLI  reportinadapter.CLIHandler

	projector *timelogoutadapter.LazySQLiteEntryProjector
}

// New backs up the log, makes sure it exists, and wires both modules against it.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	return newApp(cfg, logger, clock.SystemClock{})
}

func newApp(cfg config.Config, logger *slog.Logger, clk clock.Clock) (*App, error) {
	if err := Prepare(cfg, clk.Now(), logger); err != nil {
		return nil, err
	}

	logStore := timelogoutadapter.NewFileLogStore(cfg.FilePath, logger)
	projector := timelogoutadapter.NewLazySQLiteEntryProjector(cfg.DBPath)
	timelogUC := timelogusecase.NewInteractor(timelogservice.NewTimelogService(clk, logStore, projector))
	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		reportoutadapter.NewLogEntrySource(logStore),
	))

	return &App{
		Config:     cfg,
		Logger:     logger,
		TimelogCLI: timeloginadapter.NewCLIHandler(timelogUC),
		ReportCLI:  reportinadapter.NewCLIHandler(reportUC),
		projector:  projector,
	}, nil
}

// Prepare snapshots the log into the backup dir, or creates it empty when it is missing.
func Prepare(cfg config.Config, now time.Time, logger *slog.Logger) error {
	copied, err := backup.Snapshot(cfg.FilePath, cfg.BackupDir, now)
	if err != nil {
		return err
	}
	if copied == "" {
		logger.Debug("time log missing, creating it", "path", cfg.FilePath)
		return backup.Touch(cfg.FilePath)
	}
	logger.Debug("time log backed up", "path", cfg.FilePath, "backup", copied)
	return nil
}

func (a *App) Close() error {
	return a.projector.Close()
}

func RunWatch(app *App, category string, refresh time.Duration) error {
	model := uiapp.NewModel(app.TimelogCLI, category, app.Config.HourlyWage, refresh)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
