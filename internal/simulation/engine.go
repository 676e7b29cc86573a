// Package simulation implements the Monte Carlo retirement engine: random
// multi-asset return paths, withdrawal policy, and the statistical reduction
// to success rates, percentile bands and final-value distributions. The
// engine is a pure computation; persistence, transport and presentation live
// with its callers.
package simulation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ProgressFunc receives the number of completed trials. It may be invoked
// concurrently from multiple workers.
type ProgressFunc func(completed, total int)

// EngineConfig holds the knobs that are not part of the simulation parameters
// themselves: seeding, parallelism and progress reporting.
type EngineConfig struct {
	// Seed fixes the random sequence for reproducible runs. Zero means a
	// fresh entropy seed per invocation.
	Seed int64

	// Workers bounds parallel trial execution. Zero means GOMAXPROCS.
	Workers int

	// Progress, when set, is called every ProgressEvery completed trials.
	Progress      ProgressFunc
	ProgressEvery int
}

// Engine runs Monte Carlo retirement simulations. It holds no state across
// runs; the same engine can be reused for any number of parameter sets.
type Engine struct {
	config  EngineConfig
	factory SourceFactory
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config EngineConfig) *Engine {
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = 500
	}
	return &Engine{config: config}
}

// SetSourceFactory overrides how per-trial random sources are built. Tests
// use this to inject deterministic sources.
func (e *Engine) SetSourceFactory(factory SourceFactory) {
	e.factory = factory
}

// Run executes params.NumSimulations independent trials and reduces them to
// aggregate statistics. Validation failures are reported before any sampling;
// a cancelled context aborts the run with no partial results.
func (e *Engine) Run(ctx context.Context, params Parameters) (*Results, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	factory := e.factory
	if factory == nil {
		seed := e.config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		factory = NewSeededFactory(seed)
	}

	withdrawals := withdrawalSchedule(&params)

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > params.NumSimulations {
		workers = params.NumSimulations
	}

	// Trials write into their own slot, so the slice needs no locking and
	// the output is independent of worker scheduling.
	trials := make([]trial, params.NumSimulations)
	indexes := make(chan int)

	var wg sync.WaitGroup
	var completed atomic.Int64

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				sampler := newNormalSampler(factory(i))
				trials[i] = runTrial(&params, withdrawals, sampler)

				done := completed.Add(1)
				if e.config.Progress != nil && done%int64(e.config.ProgressEvery) == 0 {
					e.config.Progress(int(done), params.NumSimulations)
				}
			}
		}()
	}

	var cancelled error
feed:
	for i := 0; i < params.NumSimulations; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if cancelled != nil {
		return nil, fmt.Errorf("simulation cancelled: %w", cancelled)
	}

	if e.config.Progress != nil {
		e.config.Progress(params.NumSimulations, params.NumSimulations)
	}

	return aggregate(&params, trials), nil
}
