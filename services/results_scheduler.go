package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
)

// ResultsScheduler periodically processes games that finished since its last
// run and recomputes every aggregate those games touched.
type ResultsScheduler struct {
	results *ResultCalculationService
	stats   *StatsService
	spec    string
	timeout time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	lastRun time.Time
	running bool
	now     func() time.Time
	logger  *logging.Logger
}

// NewResultsScheduler creates a scheduler whose first run looks back
// lookback from now. spec is a six-field cron expression (with seconds).
func NewResultsScheduler(results *ResultCalculationService, stats *StatsService, spec string, lookback time.Duration) *ResultsScheduler {
	now := func() time.Time { return time.Now().UTC() }
	return &ResultsScheduler{
		results: results,
		stats:   stats,
		spec:    spec,
		timeout: 5 * time.Minute,
		lastRun: now().Add(-lookback),
		now:     now,
		logger:  logging.WithPrefix("ResultsJob"),
	}
}

// RunOnce processes finished games since the last successful run. The
// watermark only advances when both scoring and recomputation succeed, so a
// failed run is retried in full next time.
func (rs *ResultsScheduler) RunOnce(ctx context.Context) (ProcessSummary, error) {
	rs.mu.Lock()
	since := rs.lastRun
	rs.mu.Unlock()

	startedAt := rs.now()
	summary, err := rs.results.ProcessFinishedGamesSince(ctx, since, false)
	if err != nil {
		return summary, fmt.Errorf("results run failed: %w", err)
	}
	if err := rs.stats.RecomputeMany(ctx, summary.Touched); err != nil {
		return summary, err
	}

	rs.mu.Lock()
	rs.lastRun = startedAt
	rs.mu.Unlock()
	return summary, nil
}

// HandleFinal scores a single game reported final outside the schedule and
// recomputes what it touched. The watermark is left alone; the next
// scheduled run rescoring the same game is a no-op.
func (rs *ResultsScheduler) HandleFinal(ctx context.Context, game models.Game) error {
	summary, err := rs.results.ProcessGameCompletion(ctx, &game, false)
	if errors.Is(err, scoring.ErrScoresMissing) {
		return nil
	}
	if err != nil {
		return err
	}
	return rs.stats.RecomputeMany(ctx, summary.Touched)
}

// LastRun returns the current watermark.
func (rs *ResultsScheduler) LastRun() time.Time {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastRun
}

// Start registers the cron job and starts it. Overlapping runs are skipped.
func (rs *ResultsScheduler) Start() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.running {
		rs.logger.Warn("Already running")
		return nil
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(rs.spec, rs.tick); err != nil {
		return fmt.Errorf("invalid results schedule %q: %w", rs.spec, err)
	}

	rs.cron = c
	rs.running = true
	c.Start()
	rs.logger.Infof("Started with schedule %q", rs.spec)
	return nil
}

func (rs *ResultsScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), rs.timeout)
	defer cancel()

	summary, err := rs.RunOnce(ctx)
	if err != nil {
		rs.logger.Errorf("Run failed: %v", err)
		return
	}
	if summary.GamesProcessed > 0 || summary.GamesSkipped > 0 {
		rs.logger.Infof("Run complete: %d games, %d picks changed, %d aggregates recomputed",
			summary.GamesProcessed, summary.PicksChanged, len(summary.Touched))
	}
}

// Stop halts scheduling and waits for a run in progress to finish.
func (rs *ResultsScheduler) Stop() {
	rs.mu.Lock()
	if !rs.running {
		rs.mu.Unlock()
		return
	}
	rs.running = false
	c := rs.cron
	rs.mu.Unlock()

	<-c.Stop().Done()
	rs.logger.Info("Stopped")
}
