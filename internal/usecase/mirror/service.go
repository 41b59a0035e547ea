// Package mirror copies the remote catalog into the database-served record
// repository so the selection controller can page a local copy.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"catalog-selection/internal/observability/metrics"
	"catalog-selection/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 100 // records per upstream request, the provider's max limit
	defaultParallelism = 2
)

// ErrNoRecords is returned when the upstream catalog reports no records.
var ErrNoRecords = errors.New("upstream catalog is empty")

// Config controls one mirror run.
type Config struct {
	// BatchSize is the limit of each upstream request. Default: 100
	BatchSize int
	// MaxPages caps the number of upstream requests per run.
	MaxPages int
	// Parallelism is the number of concurrent upstream requests. Default: 2
	Parallelism int
}

// Service mirrors Source into Target.
type Service struct {
	Source repository.RecordProvider
	Target repository.RecordRepository
	cfg    Config
	logger *slog.Logger
}

// NewService creates a mirror Service. Zero Config fields take their defaults.
func NewService(source repository.RecordProvider, target repository.RecordRepository, cfg Config, logger *slog.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = defaultParallelism
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Source: source, Target: target, cfg: cfg, logger: logger}
}

// Stats contains statistics about a mirror run.
type Stats struct {
	Pages    int
	Records  int64
	Total    int64 // records reported by the upstream catalog
	Duration time.Duration
}

// Run copies upstream pages 1..min(MaxPages, ceil(total/BatchSize)) into the
// target. The first page is fetched alone to learn the total; the rest are
// fetched concurrently. The first failing page aborts the run, but pages
// already upserted stay in place, so a partial run still improves the mirror.
func (s *Service) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	err := s.run(ctx, stats)
	stats.Duration = time.Since(start)
	metrics.RecordMirrorRun(err == nil, stats.Records, stats.Duration)

	if err != nil {
		s.logger.Warn("catalog mirror failed",
			slog.Int("pages", stats.Pages),
			slog.Int64("records", stats.Records),
			slog.Any("error", err))
		return stats, err
	}

	s.logger.Info("catalog mirror completed",
		slog.Int("pages", stats.Pages),
		slog.Int64("records", stats.Records),
		slog.Int64("upstream_total", stats.Total),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

func (s *Service) run(ctx context.Context, stats *Stats) error {
	first, err := s.Source.FetchPage(ctx, 1, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("fetch page 1: %w", err)
	}
	stats.Total = first.Total
	if first.Total == 0 || len(first.Records) == 0 {
		return ErrNoRecords
	}
	if err := s.Target.Upsert(ctx, first.Records); err != nil {
		return fmt.Errorf("upsert page 1: %w", err)
	}
	stats.Pages = 1
	stats.Records = int64(len(first.Records))

	pages := int((first.Total + int64(s.cfg.BatchSize) - 1) / int64(s.cfg.BatchSize))
	if s.cfg.MaxPages > 0 && pages > s.cfg.MaxPages {
		pages = s.cfg.MaxPages
	}

	var done, written int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)
	for page := 2; page <= pages; page++ {
		g.Go(func() error {
			p, err := s.Source.FetchPage(gctx, page, s.cfg.BatchSize)
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			if len(p.Records) == 0 {
				return nil
			}
			if err := s.Target.Upsert(gctx, p.Records); err != nil {
				return fmt.Errorf("upsert page %d: %w", page, err)
			}
			atomic.AddInt64(&done, 1)
			atomic.AddInt64(&written, int64(len(p.Records)))
			return nil
		})
	}
	err = g.Wait()

	stats.Pages += int(atomic.LoadInt64(&done))
	stats.Records += atomic.LoadInt64(&written)
	return err
}
