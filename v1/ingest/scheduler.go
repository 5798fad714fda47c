package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// Runner ingests one source; *Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, src Source) Report
}

// Scheduler runs every configured source, one at a time, at startup and on
// a fixed interval.
type Scheduler struct {
	sources   []Source
	interval  time.Duration
	onStartup bool
	runner    Runner
	log       logger.Logger
	metrics   metrics.Recorder

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(cfg Config, runner Runner, log logger.Logger, rec metrics.Recorder) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Scheduler{
		sources:   cfg.Sources,
		interval:  cfg.Interval,
		onStartup: cfg.OnStartup,
		runner:    runner,
		log:       log,
		metrics:   rec,
	}
}

// Enabled reports whether there is anything to schedule.
func (s *Scheduler) Enabled() bool {
	return len(s.sources) > 0 && (s.onStartup || s.interval > 0)
}

// Start runs in the background until Stop.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop cancels the schedule and waits for the current run to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	if s.onStartup {
		s.RunAll(ctx)
	}
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunAll(ctx)
		}
	}
}

// RunAll ingests every source in order and returns their reports.
func (s *Scheduler) RunAll(ctx context.Context) []Report {
	reports := make([]Report, 0, len(s.sources))
	for _, src := range s.sources {
		if ctx.Err() != nil {
			break
		}
		rep := s.runner.Run(ctx, src)
		s.metrics.ObserveMessage("ingest", "run", rep.Status)
		reports = append(reports, rep)
	}
	return reports
}
