package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/alexanderramin/deptlens/internal/config"
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/service"
	"github.com/spf13/cobra"
)

// App holds configuration and the services used by CLI commands. Datasets
// and Observer are built from Config on first use unless set beforehand.
type App struct {
	ConfigDir string
	Config    config.Config

	Datasets service.DatasetService
	Observer service.UseCaseObserver

	// IsInteractive reports whether the bare command should open the TUI.
	IsInteractive func() bool

	logFile io.Closer
}

// NewRootCmd creates the top-level "deptlens" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "deptlens",
		Short: "Department research analytics dashboard",
		Long: "deptlens summarises a department's publications, consultancy and research projects,\n" +
			"patents and organised events by year, faculty member and category.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app)
			}
			return runSummary(cmd, app, defaultSummaryFlags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.ConfigDir, "config-dir", app.ConfigDir, "Directory holding config.yaml and the default database")
	pf.String("dataset", "", "Dataset file (YAML or JSON); overrides the database and embedded data")
	pf.String("db", "", "SQLite dataset store (default <config-dir>/deptlens.db)")
	pf.String("log-file", "", "Append JSON use-case logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Int("window", 0, "Years covered by the default year window")

	root.AddCommand(
		newSummaryCmd(app),
		newFacultyCmd(app),
		newDatasetCmd(app),
	)

	return root
}

// setup resolves configuration and wires services for one invocation.
func (a *App) setup(cmd *cobra.Command) error {
	if a.ConfigDir == "" {
		a.ConfigDir = config.DefaultDir()
	}
	cfg, err := config.Load(a.ConfigDir, cmd.Flags())
	if err != nil {
		return err
	}
	a.Config = cfg

	if a.Observer == nil {
		obs, closer, err := openObserver(cfg)
		if err != nil {
			return err
		}
		a.Observer = obs
		a.logFile = closer
	}
	if a.Datasets == nil {
		a.Datasets = service.NewDatasetService(service.DatasetLocations{
			File:   cfg.Dataset,
			DBPath: cfg.DBPath,
		}, a.Observer)
	}
	return nil
}

func openObserver(cfg config.Config) (service.UseCaseObserver, io.Closer, error) {
	if cfg.LogFile == "" {
		return service.NoopUseCaseObserver{}, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return service.NewLogUseCaseObserver(f, cfg.LogLevel), f, nil
}

// Close flushes the use-case log and releases the log file.
func (a *App) Close() error {
	var errs []error
	if a.Observer != nil {
		if err := service.Sync(a.Observer); err != nil && !errors.Is(err, os.ErrInvalid) {
			errs = append(errs, err)
		}
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}

// newController loads the dataset and builds a dashboard controller over it.
func (a *App) newController(ctx context.Context) (*dashboard.Controller, *service.DatasetSource, error) {
	ds, src, err := a.Datasets.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	c := dashboard.New(ds, domain.DeriveBounds(ds),
		dashboard.WithWindowYears(a.Config.WindowYears),
		dashboard.WithRecomputeHook(a.recomputeHook(ctx)),
	)
	return c, src, nil
}

// recomputeHook reports every snapshot rebuild as a debug use-case event.
func (a *App) recomputeHook(ctx context.Context) dashboard.RecomputeFunc {
	obs := a.Observer
	if obs == nil {
		return nil
	}
	return func(s analytics.FilterState, took time.Duration) {
		obs.ObserveUseCase(ctx, service.UseCaseEvent{
			Name:      "recompute-dashboard",
			Duration:  took,
			Success:   true,
			StartedAt: time.Now().UTC().Add(-took),
			Debug:     true,
			Fields: map[string]any{
				"years":            formatter.FormatYearRange(s.StartYear, s.EndYear),
				"faculty_id":       s.FacultyID,
				"publication_type": string(s.PublicationType),
				"indexing":         string(s.Indexing),
				"project_status":   string(s.ProjectStatus),
				"patent_status":    string(s.PatentStatus),
				"event_type":       string(s.EventType),
				"funding_min":      s.Funding.Min,
				"funding_max":      s.Funding.Max,
			},
		})
	}
}
