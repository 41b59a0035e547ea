package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	appconfig "catalog-selection/internal/config"
	"catalog-selection/internal/observability/metrics"
	mirrorUC "catalog-selection/internal/usecase/mirror"
)

// mirrorTimeout bounds one scheduled mirror run.
const mirrorTimeout = 30 * time.Minute

// startScheduler registers the periodic jobs and starts the cron scheduler.
//
// Jobs:
//   - stats: refreshes the selected-records gauge and DB pool gauges
//   - mirror: refreshes the local catalog copy (database source only)
//
// Overlapping runs of the same job are skipped.
func startScheduler(ctx context.Context, logger *slog.Logger, cfg appconfig.JobsConfig, components *ServerComponents) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(cfg.StatsSchedule, func() { refreshStats(components) }); err != nil {
		return nil, fmt.Errorf("add stats job: %w", err)
	}

	if components.Mirror != nil && cfg.MirrorSchedule != "" {
		_, err := c.AddFunc(cfg.MirrorSchedule, func() {
			runMirror(ctx, logger, components.Mirror)
		})
		if err != nil {
			return nil, fmt.Errorf("add mirror job: %w", err)
		}
	}

	c.Start()
	logger.Info("scheduler started",
		slog.String("stats_schedule", cfg.StatsSchedule),
		slog.String("mirror_schedule", cfg.MirrorSchedule),
		slog.Bool("mirror_enabled", components.Mirror != nil && cfg.MirrorSchedule != ""),
		slog.String("timezone", loc.String()))
	return c, nil
}

// refreshStats updates gauges that are not driven by requests.
func refreshStats(components *ServerComponents) {
	metrics.UpdateSelectedRecords(components.Controller.SelectedCount())
	if components.DB != nil {
		stats := components.DB.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	}
}

// runMirror executes one mirror run with timeout. Failures are logged by the
// mirror service and retried on the next tick.
func runMirror(ctx context.Context, logger *slog.Logger, svc *mirrorUC.Service) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	logger.Info("catalog mirror started")
	_, _ = svc.Run(runCtx)
}

// seedMirror fills an empty local catalog at startup so the first page is
// not blank until the first scheduled run.
func seedMirror(ctx context.Context, logger *slog.Logger, svc *mirrorUC.Service) {
	count, err := svc.Target.Count(ctx)
	if err != nil {
		logger.Warn("failed to count mirrored records", slog.Any("error", err))
		return
	}
	if count > 0 {
		logger.Info("catalog mirror already populated", slog.Int64("records", count))
		return
	}
	runMirror(ctx, logger, svc)
}
