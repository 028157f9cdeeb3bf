// Package benchmarks provides scheduling kernels and a harness that runs them
// through the scoreboard hazard detector for M2 itinerary calibration.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/itinerary"
	"github.com/sarchlab/m2sched/timing/hazard"
	"github.com/sarchlab/m2sched/timing/latency"
	"github.com/sarchlab/m2sched/timing/sched"
	"github.com/sarchlab/m2sched/tracing"
)

// KernelResult holds the scheduling results for a single kernel.
type KernelResult struct {
	// Name identifies the kernel
	Name string `json:"name"`

	// Description explains what the kernel measures
	Description string `json:"description"`

	// Instructions is the number of scheduled instructions
	Instructions int `json:"instructions"`

	// Cycles is the number of issue cycles the kernel spans
	Cycles int `json:"cycles"`

	// Makespan is the cycle at which the last result is available
	Makespan int `json:"makespan"`

	// IPC is instructions per issue cycle
	IPC float64 `json:"ipc"`

	// Stalls is the number of cycles spent waiting on structural hazards
	Stalls int `json:"stalls"`

	// IssueLimitCycles is the number of cycle moves forced by the issue width
	IssueLimitCycles int `json:"issue_limit_cycles"`

	// ForcedIssues counts instructions issued despite a hazard
	ForcedIssues int `json:"forced_issues,omitempty"`

	// Hazards is the number of hazard queries that found a conflict
	Hazards uint64 `json:"hazards"`

	// WallTime is the actual time taken to schedule the kernel
	WallTime time.Duration `json:"wall_time_ns"`
}

// Kernel defines a single scheduling region.
type Kernel struct {
	// Name identifies the kernel
	Name string

	// Description explains what the kernel measures
	Description string

	// Program is the region to schedule
	Program []*insts.Instruction
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Timing selects the latencies of the built-in M2 itinerary and of
	// result availability
	Timing *latency.TimingConfig

	// Itinerary overrides the built-in M2 itinerary when set
	Itinerary *itinerary.Data

	// Direction is the scheduling direction
	Direction sched.Direction

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Timing:    latency.DefaultTimingConfig(),
		Direction: sched.TopDown,
		Output:    os.Stdout,
		Verbose:   false,
	}
}

// Harness runs scheduling kernels and reports results.
type Harness struct {
	config  HarnessConfig
	machine *itinerary.Machine
	kernels []Kernel
}

// NewHarness creates a new benchmark harness. It fails if the itinerary
// does not compile.
func NewHarness(config HarnessConfig) (*Harness, error) {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}

	data := config.Itinerary
	if data == nil {
		data = latency.M2Itinerary(config.Timing)
	}

	machine, err := data.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling itinerary: %w", err)
	}

	return &Harness{
		config:  config,
		machine: machine,
	}, nil
}

// AddKernel adds a kernel to the harness.
func (h *Harness) AddKernel(k Kernel) {
	h.kernels = append(h.kernels, k)
}

// AddKernels adds multiple kernels to the harness.
func (h *Harness) AddKernels(kernels []Kernel) {
	h.kernels = append(h.kernels, kernels...)
}

// RunAll schedules all kernels and returns results.
func (h *Harness) RunAll() []KernelResult {
	results := make([]KernelResult, 0, len(h.kernels))

	for _, k := range h.kernels {
		results = append(results, h.runKernel(k))
	}

	return results
}

func (h *Harness) runKernel(k Kernel) KernelResult {
	det := hazard.NewScoreboardHazardDetector(h.machine)
	counter := tracing.NewEventCounter()
	det.AcceptHook(counter)

	s := sched.NewScheduler(det,
		sched.WithDirection(h.config.Direction),
		sched.WithLatencyTable(latency.NewTableWithConfig(h.config.Timing)),
	)

	start := time.Now()
	res := s.Schedule(k.Program)
	wallTime := time.Since(start)

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "%s: final scoreboards\n", k.Name)
		det.Dump(h.config.Output)
	}

	return KernelResult{
		Name:             k.Name,
		Description:      k.Description,
		Instructions:     len(res.Slots),
		Cycles:           res.Cycles,
		Makespan:         res.Makespan,
		IPC:              res.IPC(),
		Stalls:           res.Stalls,
		IssueLimitCycles: res.IssueLimitCycles,
		ForcedIssues:     res.ForcedIssues,
		Hazards:          counter.Count(hazard.HookPosHazard),
		WallTime:         wallTime,
	}
}

// PrintResults outputs kernel results in a human-readable format.
func (h *Harness) PrintResults(results []KernelResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== M2Sched Scheduling Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Kernel: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions:       %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Issue Cycles:       %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Makespan:           %d\n", r.Makespan)
		_, _ = fmt.Fprintf(h.config.Output, "  IPC:                %.3f\n", r.IPC)
		_, _ = fmt.Fprintf(h.config.Output, "  Hazard Stalls:      %d\n", r.Stalls)
		_, _ = fmt.Fprintf(h.config.Output, "  Issue-Width Stalls: %d\n", r.IssueLimitCycles)
		if r.ForcedIssues > 0 {
			_, _ = fmt.Fprintf(h.config.Output, "  Forced Issues:      %d\n", r.ForcedIssues)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs kernel results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []KernelResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,cycles,makespan,ipc,stalls,issue_limit_cycles,forced_issues,hazards")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%.3f,%d,%d,%d,%d\n",
			r.Name,
			r.Instructions,
			r.Cycles,
			r.Makespan,
			r.IPC,
			r.Stalls,
			r.IssueLimitCycles,
			r.ForcedIssues,
			r.Hazards,
		)
	}
}

// Report is the complete JSON output format for kernel results.
type Report struct {
	// Metadata about the run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual kernel results
	Results []KernelResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the run.
type ReportMetadata struct {
	// Timestamp when the kernels were scheduled
	Timestamp string `json:"timestamp"`

	// Direction is the scheduling direction
	Direction string `json:"direction"`

	// IssueWidth of the itinerary, 0 for unlimited
	IssueWidth int `json:"issue_width"`
}

// ReportSummary contains aggregate statistics across all kernels.
type ReportSummary struct {
	TotalKernels      int           `json:"total_kernels"`
	TotalCycles       int           `json:"total_cycles"`
	TotalInstructions int           `json:"total_instructions"`
	AverageIPC        float64       `json:"average_ipc"`
	TotalWallTime     time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs kernel results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []KernelResult) error {
	var totalCycles, totalInstructions int
	var totalWallTime time.Duration
	for _, r := range results {
		totalCycles += r.Cycles
		totalInstructions += r.Instructions
		totalWallTime += r.WallTime
	}

	avgIPC := float64(0)
	if totalCycles > 0 {
		avgIPC = float64(totalInstructions) / float64(totalCycles)
	}

	report := Report{
		Metadata: ReportMetadata{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Direction:  h.config.Direction.String(),
			IssueWidth: h.machine.IssueWidth(),
		},
		Results: results,
		Summary: ReportSummary{
			TotalKernels:      len(results),
			TotalCycles:       totalCycles,
			TotalInstructions: totalInstructions,
			AverageIPC:        avgIPC,
			TotalWallTime:     totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
