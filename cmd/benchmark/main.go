// Command benchmark runs the M2Sched scheduling kernels.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results in JSON format
//	-bottom-up  Schedule kernels bottom-up
//	-config     Timing configuration JSON file
//	-core       Run only the core kernels
//
// Example:
//
//	# Run all kernels with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// The results can be compared against measured M2 throughput to calibrate
// the itinerary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/m2sched/benchmarks"
	"github.com/sarchlab/m2sched/timing/latency"
	"github.com/sarchlab/m2sched/timing/sched"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	bottomUp := flag.Bool("bottom-up", false, "Schedule kernels bottom-up")
	configPath := flag.String("config", "", "Path to timing configuration JSON file")
	coreOnly := flag.Bool("core", false, "Run only the core kernels")
	verbose := flag.Bool("v", false, "Dump the scoreboards after each kernel")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Output = os.Stdout
	config.Verbose = *verbose
	if *bottomUp {
		config.Direction = sched.BottomUp
	}
	if *configPath != "" {
		timing, err := latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
			os.Exit(1)
		}
		config.Timing = timing
	}

	harness, err := benchmarks.NewHarness(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *coreOnly {
		harness.AddKernels(benchmarks.GetCoreKernels())
	} else {
		harness.AddKernels(benchmarks.GetKernels())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("M2Sched Scheduling Benchmark Harness")
		fmt.Println("====================================")
		fmt.Printf("Direction: %s\n", config.Direction)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}
}
