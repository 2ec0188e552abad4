// Package main runs a full portfolio risk assessment from the command line:
// it loads a risk portfolio from YAML, simulates every risk, analyzes the
// correlation network and writes the assembled report as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskforge/riskengine/pkg/assessment"
	"github.com/riskforge/riskengine/pkg/config"
	"github.com/riskforge/riskengine/pkg/logging"
	"github.com/riskforge/riskengine/pkg/metrics"
	"github.com/riskforge/riskengine/pkg/simulation"
)

func main() {
	risksPath := flag.String("risks", "", "Path to the risk portfolio YAML (required)")
	configPath := flag.String("config", "", "Path to the engine config YAML (optional)")
	seed := flag.Uint64("seed", 0, "RNG seed (overrides config)")
	iterations := flag.Int("iterations", 0, "Monte Carlo iterations (overrides config)")
	timeframe := flag.Int("timeframe", 0, "Timeframe in days (overrides config)")
	workers := flag.Int("workers", 0, "Simulation workers (0 = CPU count)")
	outPath := flag.String("out", "", "Output file (default stdout)")
	flag.Parse()

	if *risksPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *iterations != 0 {
		cfg.Simulation.Iterations = *iterations
	}
	if *timeframe != 0 {
		cfg.Simulation.TimeframeDays = *timeframe
	}
	if *workers != 0 {
		cfg.Simulation.Workers = *workers
	}

	risks, err := config.LoadRisks(*risksPath)
	if err != nil {
		log.Fatalf("Failed to load risks: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	engine, err := simulation.NewEngine(simulation.Options{
		Workers: cfg.Simulation.Workers,
		Logger:  logger,
		Metrics: metrics.DefaultRegistry(),
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Close()

	assessor, err := assessment.NewAssessor(assessment.Options{
		Engine:      engine,
		Correlation: cfg.CorrelationSettings(),
		Recommend:   cfg.RecommendSettings(),
		Logger:      logger,
		Metrics:     metrics.DefaultRegistry(),
	})
	if err != nil {
		log.Fatalf("Failed to create assessor: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := assessor.AssessJSON(ctx, assessment.Request{
		Risks:      risks,
		Parameters: cfg.SimulationParameters(),
		Seed:       cfg.Simulation.Seed,
		Framework:  cfg.Framework,
	})
	if err != nil {
		log.Fatalf("Assessment failed: %v", err)
	}

	if *outPath == "" {
		fmt.Println(string(report))
		return
	}
	if err := os.WriteFile(*outPath, report, 0o644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", *outPath)
}
