package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"timeclock/internal/bootstrap"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/logging"
	"timeclock/internal/ui/render"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type globalFlags struct {
	file     string
	config   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "timeclock",
		Short:         "Track working hours in a plain text log",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.file, "file", "f", "", "time log path (default $"+config.EnvFile+")")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "YAML config file (default ~/.timeclock/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newInCmd(flags))
	root.AddCommand(newOutCmd(flags))
	root.AddCommand(newCurrentCmd(flags))
	root.AddCommand(newSummaryCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newCategoriesCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	return root
}

func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Options{
		FilePath:   flags.file,
		ConfigPath: flags.config,
		LogLevel:   flags.logLevel,
	})
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return bootstrap.New(cfg, logger)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(*bootstrap.App, render.Printer) error) error {
	app, err := loadApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app, render.NewPrinter(cmd.OutOrStdout(), app.Config.HourlyWage))
}

func newInCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "in",
		Short: "Clock in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, _ render.Printer) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "clocking in")
				_, err := app.TimelogCLI.ClockIn(context.Background())
				return err
			})
		},
	}
}

func newOutCmd(flags *globalFlags) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "out",
		Short: "Clock out of the current entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "clocking out")
				out, err := app.TimelogCLI.ClockOut(context.Background(), category)
				if err != nil {
					return err
				}
				printer.ClockedOut(out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category for the closed entry")
	return cmd
}

func newCurrentCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show hours worked today including the open entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.TimelogCLI.Current(context.Background())
				if err != nil {
					return err
				}
				printer.Current(out)
				return nil
			})
		},
	}
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Weekly grid with month and grand totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, flags)
		},
	}
}

func runSummary(cmd *cobra.Command, flags *globalFlags) error {
	return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
		out, err := app.ReportCLI.Summary(context.Background())
		if err != nil {
			return err
		}
		printer.Summary(out)
		return nil
	})
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Grouped category reports"}

	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Current week by day and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.ReportCLI.CurrentWeek(context.Background())
				if err != nil {
					return err
				}
				printer.CurrentWeek(out)
				return nil
			})
		},
	}

	daysCmd := &cobra.Command{
		Use:   "days",
		Short: "Hours per calendar day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.ReportCLI.Days(context.Background())
				if err != nil {
					return err
				}
				printer.Days(out)
				return nil
			})
		},
	}

	weekCmd := &cobra.Command{
		Use:   "week",
		Short: "Hours per ISO week and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.ReportCLI.Weeks(context.Background())
				if err != nil {
					return err
				}
				printer.Weeks(out)
				return nil
			})
		},
	}

	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Hours per month and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.ReportCLI.Months(context.Background())
				if err != nil {
					return err
				}
				printer.Months(out)
				return nil
			})
		},
	}

	yearCmd := &cobra.Command{
		Use:   "year",
		Short: "Hours per year and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				out, err := app.ReportCLI.Years(context.Background())
				if err != nil {
					return err
				}
				printer.Years(out)
				return nil
			})
		},
	}

	report.AddCommand(dayCmd, daysCmd, weekCmd, monthCmd, yearCmd)
	return report
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection of the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, _ render.Printer) error {
				out, err := app.TimelogCLI.Reindex(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d entries into %s\n", out.Entries, app.Config.DBPath)
				return nil
			})
		},
	}
}

func newCategoriesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Category totals from the projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, printer render.Printer) error {
				totals, err := app.TimelogCLI.CategoryTotals(context.Background())
				if err != nil {
					return err
				}
				printer.Categories(totals)
				return nil
			})
		},
	}
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var category string
	var refresh time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live status view with clock in and out keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App, _ render.Printer) error {
				return bootstrap.RunWatch(app, category, refresh)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category used when clocking out")
	cmd.Flags().DurationVar(&refresh, "refresh", 30*time.Second, "status refresh interval")
	return cmd
}
