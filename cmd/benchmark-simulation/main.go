package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/simulation"
)

func main() {
	iterations := flag.Int("iterations", 100_000, "Monte Carlo iterations per run")
	runs := flag.Int("runs", 5, "Runs per configuration")
	chunkSize := flag.Int("chunk", 0, "Iterations per dispatched chunk (0 = default)")
	flag.Parse()

	subject := risk.Input{
		ID:          "bench-risk",
		Title:       "Benchmark subject",
		Category:    risk.CategoryCybersecurity,
		Probability: 65,
		Impact:      75,
		Factors:     []string{"cloud", "third-party"},
	}
	params := simulation.Parameters{TimeframeDays: 365, Iterations: *iterations}

	fmt.Printf("🔬 Monte Carlo Simulation Benchmark\n")
	fmt.Printf("====================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Iterations:  %d\n", *iterations)
	fmt.Printf("  Runs:        %d\n", *runs)
	fmt.Printf("  CPU Cores:   %d\n\n", runtime.NumCPU())

	workerCounts := []int{1, 2, 4, runtime.NumCPU()}
	var baseline time.Duration

	for _, workers := range workerCounts {
		elapsed, err := benchmark(subject, params, workers, *chunkSize, *runs)
		if err != nil {
			log.Fatalf("Benchmark failed with %d workers: %v", workers, err)
		}

		throughput := float64(*iterations) / elapsed.Seconds()
		fmt.Printf("⚡ Workers: %-3d  avg %-12s  %.0f samples/sec", workers, elapsed.Round(time.Microsecond), throughput)
		if workers == 1 {
			baseline = elapsed
			fmt.Printf("  (baseline)")
		} else if baseline > 0 {
			fmt.Printf("  %.2fx speedup", baseline.Seconds()/elapsed.Seconds())
		}
		fmt.Println()
	}
}

// benchmark averages run duration over the requested number of runs.
func benchmark(subject risk.Input, params simulation.Parameters, workers, chunkSize, runs int) (time.Duration, error) {
	engine, err := simulation.NewEngine(simulation.Options{Workers: workers, ChunkSize: chunkSize})
	if err != nil {
		return 0, err
	}
	defer engine.Close()

	// Warm up the pool before timing.
	if _, err := engine.Run(context.Background(), subject, params, 1); err != nil {
		return 0, err
	}

	var total time.Duration
	for i := 0; i < runs; i++ {
		start := time.Now()
		if _, err := engine.Run(context.Background(), subject, params, uint64(i+2)); err != nil {
			return 0, err
		}
		total += time.Since(start)
	}
	return total / time.Duration(runs), nil
}
