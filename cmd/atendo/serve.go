package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitegentech/atendo/internal/classify"
	"github.com/sitegentech/atendo/internal/config"
	"github.com/sitegentech/atendo/internal/forecast"
	"github.com/sitegentech/atendo/internal/gamify"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/report"
	"github.com/sitegentech/atendo/internal/server"
	"github.com/sitegentech/atendo/internal/storage"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	jobTimeout        = 2 * time.Minute
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attendance API server",
		Long: `Start the HTTP API that the browser extension and dashboard talk to.

The server also runs the background schedules: ranking refreshes every
5 minutes, demand forecasts every 30 minutes, and the daily email report
at 14:00 and 18:00 on weekdays (America/Sao_Paulo).`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :3000)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loc := cfg.Location()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if migrateErr := store.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("failed to run migrations: %w", migrateErr)
	}

	engine, err := classify.NewDefaultEngine()
	if err != nil {
		return fmt.Errorf("failed to build classification engine: %w", err)
	}

	ranking := gamify.NewSyncer(store, gamify.NewCalculator(loc, gamify.DefaultConfig()))
	forecasts := forecast.NewGenerator(store, forecast.NewBuilder(loc))

	var reporter *report.Reporter
	if cfg.SMTPConfigured() {
		reporter = report.NewReporter(store, report.NewSMTPSender(cfg.SMTP), loc)
		slog.Info("Email reports enabled", "recipients", len(cfg.SMTP.Recipients))
	} else {
		slog.Warn("SMTP not configured, email reports disabled")
	}

	srv := server.NewServer(store, engine, ranking, forecasts, reporter, loc)

	scheduler, err := startScheduler(loc, ranking, forecasts, reporter)
	if err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", cfg.ServerAddr, "timezone", cfg.Timezone)
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	case serveErr := <-errCh:
		return fmt.Errorf("server failed: %w", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}

	slog.Info("Server stopped")
	return nil
}

type scheduledJob struct {
	run  func(ctx context.Context) error
	name string
	spec string
}

// startScheduler registers the recurring jobs. All schedules run in the
// operation timezone so the report hours match the support shift.
func startScheduler(loc *time.Location, ranking *gamify.Syncer, forecasts *forecast.Generator, reporter *report.Reporter) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithLocation(loc))

	jobs := []scheduledJob{
		{
			name: "ranking-today",
			spec: "*/5 * * * *",
			run: func(ctx context.Context) error {
				return ranking.Sync(ctx, model.PeriodToday)
			},
		},
		{
			name: "ranking-month",
			spec: "0 * * * *",
			run: func(ctx context.Context) error {
				return ranking.Sync(ctx, model.PeriodMonth)
			},
		},
		{
			name: "forecast-hourly",
			spec: "*/30 * * * *",
			run: func(ctx context.Context) error {
				_, err := forecasts.Generate(ctx, model.ForecastHourly)
				return err
			},
		},
		{
			name: "forecast-weekly",
			spec: "0 */4 * * *",
			run: func(ctx context.Context) error {
				_, err := forecasts.Generate(ctx, model.ForecastWeekly)
				return err
			},
		},
	}

	if reporter != nil {
		jobs = append(jobs,
			scheduledJob{
				name: "report-14h",
				spec: "0 14 * * 1-5",
				run: func(ctx context.Context) error {
					_, err := reporter.Send(ctx, "Diário 14h")
					return err
				},
			},
			scheduledJob{
				name: "report-18h",
				spec: "0 18 * * 1-5",
				run: func(ctx context.Context) error {
					_, err := reporter.Send(ctx, "Diário 18h")
					return err
				},
			},
		)
	}

	for _, job := range jobs {
		_, err := scheduler.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if runErr := job.run(ctx); runErr != nil {
				if errors.Is(runErr, forecast.ErrNoHistory) {
					slog.Debug("Scheduled job skipped", "job", job.name, "reason", "no history")
					return
				}
				slog.Error("Scheduled job failed", "job", job.name, "error", runErr)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	scheduler.Start()
	slog.Info("Scheduler started", "jobs", len(jobs))
	return scheduler, nil
}
