// Package simulation runs seeded Monte Carlo simulations of individual
// risks: N independent severity draws summarized into a distribution, plus a
// time-indexed trajectory over the configured horizon.
//
// Determinism: every stochastic draw comes from a sub-stream derived from
// (seed, chunk index), and every chunk writes into a fixed segment of the
// sample slice. The result is therefore byte-identical for a fixed seed no
// matter how chunks are scheduled across workers.
package simulation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskforge/riskengine/pkg/logging"
	"github.com/riskforge/riskengine/pkg/metrics"
	"github.com/riskforge/riskengine/pkg/parallel"
	"github.com/riskforge/riskengine/pkg/pools"
	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/rng"
	"github.com/riskforge/riskengine/pkg/sampling"
	"github.com/riskforge/riskengine/pkg/stats"
)

// defaultChunkSize is the number of iterations dispatched per worker task.
const defaultChunkSize = 2048

// TrajectoryPoint is one time step of the simulated risk evolution.
type TrajectoryPoint struct {
	Day         int     `json:"day"`
	Probability float64 `json:"probability"`
	Impact      float64 `json:"impact"`
}

// Result is the immutable outcome of one simulation run.
type Result struct {
	RiskID              string                     `json:"riskId"`
	Distribution        sampling.Family            `json:"distribution"`
	Seed                uint64                     `json:"seed"`
	Iterations          int                        `json:"iterations"`
	ExpectedValue       float64                    `json:"expectedValue"`
	StdDev              float64                    `json:"stdDev"`
	Percentiles         []stats.PercentilePoint    `json:"percentiles"`
	ConfidenceIntervals []stats.ConfidenceInterval `json:"confidenceIntervals"`
	ValueAtRisk         []stats.VaREntry           `json:"valueAtRisk"`
	Trajectory          []TrajectoryPoint          `json:"trajectory"`
}

// Options configures an Engine.
type Options struct {
	// Workers sets the worker pool size; 0 means GOMAXPROCS.
	Workers int
	// ChunkSize sets iterations per dispatched chunk; 0 means the default.
	ChunkSize int
	// Logger receives progress logs; nil means silent.
	Logger logging.Logger
	// Metrics receives simulation observations; nil disables instrumentation.
	Metrics *metrics.Registry
	// OnProgress, if set, is called after each completed chunk with the
	// number of finished iterations and the total. Called from worker
	// goroutines; implementations must be safe for concurrent use.
	OnProgress func(done, total int)
}

// Engine runs simulations on a shared worker pool. Safe for concurrent use;
// independent runs share no mutable state.
type Engine struct {
	pool       *parallel.WorkerPool
	samples    *pools.SamplePool
	logger     logging.Logger
	metrics    *metrics.Registry
	chunkSize  int
	onProgress func(done, total int)
}

// NewEngine creates a simulation engine.
func NewEngine(opts Options) (*Engine, error) {
	pool, err := parallel.NewWorkerPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("simulation engine: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	return &Engine{
		pool:       pool,
		samples:    pools.NewSamplePool(),
		logger:     logger,
		metrics:    opts.Metrics,
		chunkSize:  chunkSize,
		onProgress: opts.OnProgress,
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	e.pool.Close()
}

// Run simulates a single risk. The context governs cancellation and
// timeouts: a run interrupted mid-flight returns ErrSimulationCancelled and
// no result.
func (e *Engine) Run(ctx context.Context, r risk.Input, p Parameters, seed uint64) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := risk.Validate(&r); err != nil {
		return nil, err
	}

	start := time.Now()
	family := p.familyFor(r.ID)
	sampler := sampling.NewSampler(family)

	if e.metrics != nil {
		defer e.metrics.SimulationStarted()()
	}

	samples, err := e.drawSamples(ctx, r, p, sampler, seed)
	if err != nil {
		if e.metrics != nil {
			status := "error"
			if err == ErrSimulationCancelled || ctx.Err() != nil {
				status = "cancelled"
			}
			e.metrics.RecordSimulation(string(family), status, time.Since(start), 0)
		}
		return nil, err
	}
	defer e.samples.Put(samples)

	summary, err := stats.Summarize(samples)
	if err != nil {
		return nil, fmt.Errorf("summarizing %d samples for risk %q: %w", len(samples), r.ID, err)
	}

	trajectory := buildTrajectory(r, p, sampler, rng.New(seed))

	if e.metrics != nil {
		e.metrics.RecordSimulation(string(family), "success", time.Since(start), p.Iterations)
	}
	e.logger.Debug("simulation complete",
		logging.String("risk_id", r.ID),
		logging.Int("iterations", p.Iterations),
		logging.Float64("expected_value", summary.ExpectedValue),
		logging.Duration("elapsed", time.Since(start)),
	)

	return &Result{
		RiskID:              r.ID,
		Distribution:        family,
		Seed:                seed,
		Iterations:          p.Iterations,
		ExpectedValue:       summary.ExpectedValue,
		StdDev:              summary.StdDev,
		Percentiles:         summary.Percentiles,
		ConfidenceIntervals: summary.ConfidenceIntervals,
		ValueAtRisk:         summary.ValueAtRisk,
		Trajectory:          trajectory,
	}, nil
}

// drawSamples fills the sample slice in parallel chunks. Each chunk owns a
// disjoint segment and its own rng stream, so output does not depend on
// scheduling.
func (e *Engine) drawSamples(ctx context.Context, r risk.Input, p Parameters, sampler *sampling.Sampler, seed uint64) ([]float64, error) {
	samples := e.samples.Get(p.Iterations)
	base := rng.New(seed)

	var (
		firstErr  error
		errMu     sync.Mutex
		completed atomic.Int64
	)

	e.pool.ForEachChunk(p.Iterations, e.chunkSize, func(chunk, start, end int) {
		if ctx.Err() != nil {
			return
		}

		src := base.Split(uint64(chunk))
		for i := start; i < end; i++ {
			// Re-check periodically so long chunks notice cancellation.
			if (i-start)&0xff == 0 && ctx.Err() != nil {
				return
			}
			v, err := sampler.Sample(r, src)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			samples[i] = v
		}

		done := completed.Add(int64(end - start))
		if e.onProgress != nil {
			e.onProgress(int(done), p.Iterations)
		}
	})

	if ctx.Err() != nil {
		e.samples.Put(samples)
		return nil, fmt.Errorf("%w: %v", ErrSimulationCancelled, context.Cause(ctx))
	}
	if firstErr != nil {
		e.samples.Put(samples)
		return nil, firstErr
	}
	return samples, nil
}
