package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/riskforge/riskengine/pkg/clustering"
	"github.com/riskforge/riskengine/pkg/correlation"
	"github.com/riskforge/riskengine/pkg/logging"
	"github.com/riskforge/riskengine/pkg/metrics"
	"github.com/riskforge/riskengine/pkg/recommend"
	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/simulation"
	"github.com/riskforge/riskengine/pkg/systemic"
)

// Request describes one portfolio assessment.
type Request struct {
	Risks      []risk.Input
	Parameters simulation.Parameters
	Seed       uint64
	Framework  string
}

// Options configures an Assessor.
type Options struct {
	// Engine runs the per-risk simulations. Required.
	Engine *simulation.Engine
	// Correlation tunes network analysis; the zero value means defaults.
	Correlation correlation.Config
	// Recommend tunes recommendation generation; the zero value means
	// defaults.
	Recommend recommend.Config
	// Logger receives progress logs; nil means silent.
	Logger logging.Logger
	// Metrics receives assessment observations; nil disables
	// instrumentation.
	Metrics *metrics.Registry
	// Clock supplies report timestamps; nil means time.Now. Injectable for
	// reproducible output.
	Clock func() time.Time
}

// Assessor runs the full pipeline: simulation per risk, correlation and
// network analysis, cluster detection, systemic indicators and
// recommendations. Safe for concurrent use.
type Assessor struct {
	engine  *simulation.Engine
	corrCfg correlation.Config
	recCfg  recommend.Config
	logger  logging.Logger
	metrics *metrics.Registry
	clock   func() time.Time
	cache   *reportCache
}

// NewAssessor creates an assessor.
func NewAssessor(opts Options) (*Assessor, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("assessor: engine is required")
	}
	corrCfg := opts.Correlation
	if corrCfg == (correlation.Config{}) {
		corrCfg = correlation.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Assessor{
		engine:  opts.Engine,
		corrCfg: corrCfg,
		recCfg:  opts.Recommend,
		logger:  logger,
		metrics: opts.Metrics,
		clock:   clock,
		cache:   newReportCache(),
	}, nil
}

// Assess runs the pipeline and assembles a report. The first error aborts
// the whole assessment; no partial report is returned.
func (a *Assessor) Assess(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := a.logger.With(
		logging.String("run_id", runID),
		logging.Int("risks", len(req.Risks)),
	)

	if err := risk.ValidateSet(req.Risks); err != nil {
		a.recordAssessment("invalid", start, len(req.Risks))
		return nil, err
	}

	log.Info("assessment started",
		logging.Uint64("seed", req.Seed),
		logging.Int("iterations", req.Parameters.Iterations),
	)

	results := make([]simulation.Result, 0, len(req.Risks))
	severities := make(map[string]float64, len(req.Risks))
	for _, r := range req.Risks {
		res, err := a.engine.Run(ctx, r, req.Parameters, req.Seed)
		if err != nil {
			a.recordAssessment("error", start, len(req.Risks))
			log.Error("assessment aborted",
				logging.String("risk_id", r.ID),
				logging.Error(err),
			)
			return nil, fmt.Errorf("simulating risk %q: %w", r.ID, err)
		}
		results = append(results, *res)
		severities[r.ID] = r.Severity()
	}

	report := &Report{
		Framework:   req.Framework,
		GeneratedAt: a.clock().UTC(),
		Seed:        req.Seed,
		Parameters:  req.Parameters,
		Simulations: results,
	}

	if len(req.Risks) >= 2 {
		matrix, network, err := correlation.Analyze(req.Risks, a.corrCfg)
		if err != nil {
			a.recordAssessment("error", start, len(req.Risks))
			return nil, err
		}
		clusters := clustering.Detect(req.Risks, matrix, a.corrCfg.EdgeThreshold)
		indicators := systemic.Derive(network, clusters, len(req.Risks))

		report.Correlation = matrix
		report.Network = network
		report.Clusters = clusters
		report.Systemic = &indicators

		if a.metrics != nil {
			a.metrics.UpdateNetworkMetrics(matrix.Size(), network.EdgeCount, network.Density)
			a.metrics.RecordClusters(len(clusters))
		}
	}

	report.Recommendations = recommend.Generate(recommend.Input{
		Risks:      req.Risks,
		Severities: severities,
		Clusters:   report.Clusters,
	}, a.recCfg)

	a.recordAssessment("success", start, len(req.Risks))
	log.Info("assessment complete",
		logging.Int("clusters", len(report.Clusters)),
		logging.Int("recommendations", len(report.Recommendations)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// AssessJSON runs Assess and returns the report as JSON. Results are memoized
// by a fingerprint of the request: a repeat call for an unchanged portfolio,
// parameters and seed returns the stored bytes unchanged, timestamp included.
func (a *Assessor) AssessJSON(ctx context.Context, req Request) ([]byte, error) {
	key := fingerprint(req.Risks, req.Parameters, req.Seed, req.Framework)
	if data, ok := a.cache.get(key); ok {
		if a.metrics != nil {
			a.metrics.RecordCacheHit()
		}
		return data, nil
	}
	if a.metrics != nil {
		a.metrics.RecordCacheMiss()
	}

	report, err := a.Assess(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	a.cache.put(key, data)
	return data, nil
}

func (a *Assessor) recordAssessment(status string, start time.Time, risks int) {
	if a.metrics != nil {
		a.metrics.RecordAssessment(status, time.Since(start), risks)
	}
}
