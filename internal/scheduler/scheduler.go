package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
	"github.com/camerpulse/camerpulse-sub015/internal/pipeline"
	"github.com/camerpulse/camerpulse-sub015/pkg/circuit"
)

// Loader supplies the bounded recent event window a pass recomputes
// from. It is the engine's only I/O dependency.
type Loader interface {
	RecentWindow(ctx context.Context, limit int) ([]personas.SentimentEvent, error)
}

// ResultFunc receives each completed pass result.
type ResultFunc func(ctx context.Context, result *pipeline.Result, computedAt time.Time)

// Scheduler runs the stateless pipeline on a fixed interval. Every pass
// reloads the window and recomputes everything from scratch; a failed
// load skips the pass and the next tick starts fresh, so there is no
// partial state to roll back.
type Scheduler struct {
	loader   Loader
	pipe     *pipeline.Pipeline
	interval time.Duration
	window   int
	breaker  *circuit.Breaker
	onResult ResultFunc
}

// Config holds scheduler settings.
type Config struct {
	Interval    time.Duration
	EventWindow int
	OnResult    ResultFunc
}

func New(loader Loader, pipe *pipeline.Pipeline, cfg Config) *Scheduler {
	return &Scheduler{
		loader:   loader,
		pipe:     pipe,
		interval: cfg.Interval,
		window:   cfg.EventWindow,
		breaker: circuit.NewBreaker(circuit.Config{
			Name:        "event-loader",
			MaxFailures: 3,
			Timeout:     30 * time.Second,
			OnStateChange: func(name string, from, to circuit.State) {
				log.Printf("scheduler: %s breaker %s -> %s", name, from, to)
			},
		}),
		onResult: cfg.OnResult,
	}
}

// Run blocks until the context ends, recomputing once immediately and
// then on every tick.
func (s *Scheduler) Run(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		log.Printf("scheduler: initial pass failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				log.Printf("scheduler: pass failed: %v", err)
			}
		}
	}
}

// RunOnce executes a single load-and-compute pass.
func (s *Scheduler) RunOnce(ctx context.Context) (*pipeline.Result, error) {
	var batch []personas.SentimentEvent
	err := s.breaker.Execute(ctx, func() error {
		var loadErr error
		batch, loadErr = s.loader.RecentWindow(ctx, s.window)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load event window: %w", err)
	}

	result, err := s.pipe.Compute(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to compute pass: %w", err)
	}

	computedAt := time.Now().UTC()
	log.Printf("scheduler: pass complete: %d events, %d authors, %d regions, %d alerts",
		len(batch), len(result.Profiles), len(result.Clusters), len(result.Alerts))

	if s.onResult != nil {
		s.onResult(ctx, result, computedAt)
	}

	return result, nil
}
