package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/timing/hazard"
	"github.com/sarchlab/m2sched/timing/latency"
	"github.com/sarchlab/m2sched/timing/sched"
	"github.com/sarchlab/m2sched/tracing"
)

func newScheduleCmd() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule <program>",
		Short: "Schedule a program and print the issue cycle of each instruction.",
		Long: "`schedule` reads one instruction per line. Every branch ends a " +
			"scheduling region; each region starts from an empty scoreboard.",
		Args: cobra.ExactArgs(1),
		RunE: runSchedule,
	}

	scheduleCmd.Flags().Bool("bottom-up", false, "Schedule regions bottom-up")
	scheduleCmd.Flags().Int("max-stall", 0,
		"Cycles an instruction may wait on a hazard, 0 for the scoreboard depth")
	scheduleCmd.Flags().String("record", "",
		"Record detector events into this SQLite database")

	return scheduleCmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	bottomUp, _ := cmd.Flags().GetBool("bottom-up")
	maxStall, _ := cmd.Flags().GetInt("max-stall")
	recordPath, _ := cmd.Flags().GetString("record")
	out := cmd.OutOrStdout()

	prog, err := readProgram(args[0])
	if err != nil {
		return err
	}

	setup, err := loadMachine(cmd)
	if err != nil {
		return err
	}

	det := hazard.NewScoreboardHazardDetector(setup.machine)

	counter := tracing.NewEventCounter()
	det.AcceptHook(counter)

	if recordPath != "" {
		recorder, err := tracing.NewSQLiteRecorder(recordPath)
		if err != nil {
			return err
		}
		defer func() { _ = recorder.Close() }()

		det.AcceptHook(tracing.NewEventTracer(recorder))
		fmt.Fprintf(cmd.ErrOrStderr(), "Recording events to %s\n", recorder.Path())
	}

	direction := sched.TopDown
	if bottomUp {
		direction = sched.BottomUp
	}

	scheduler := sched.NewScheduler(det,
		sched.WithDirection(direction),
		sched.WithMaxStall(maxStall),
		sched.WithLatencyTable(latency.NewTableWithConfig(setup.timing)),
	)

	if verbose {
		fmt.Fprintf(out, "Itinerary: %s\n", setup.source)
		fmt.Fprintf(out, "Scoreboard depth: %d\n", det.Depth())
		fmt.Fprintf(out, "Issue width: %d\n", det.IssueWidth())
		fmt.Fprintf(out, "Direction: %s\n\n", direction)
	}

	var total summary
	for i, region := range splitRegions(prog) {
		res := scheduler.Schedule(region)
		printRegion(out, i, res)
		total.add(res)
	}

	total.print(out)

	if verbose {
		fmt.Fprintf(out, "\nDetector events:\n")
		for _, pos := range counter.Positions() {
			fmt.Fprintf(out, "  %-20s %d\n", pos.Name, counter.Count(pos))
		}
	}

	return nil
}

func readProgram(path string) ([]*insts.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening program: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := insts.ParseProgram(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return prog, nil
}

// splitRegions cuts a program after every branch.
func splitRegions(prog []*insts.Instruction) [][]*insts.Instruction {
	var regions [][]*insts.Instruction

	start := 0
	for i, inst := range prog {
		if insts.IsBranch(inst.Op) {
			regions = append(regions, prog[start:i+1])
			start = i + 1
		}
	}

	if start < len(prog) {
		regions = append(regions, prog[start:])
	}

	return regions
}

func printRegion(w io.Writer, index int, res sched.Result) {
	fmt.Fprintf(w, "Region %d:\n", index)
	for _, slot := range res.Slots {
		fmt.Fprintf(w, "  %4d  %4d  %s\n", slot.Cycle, slot.Inst.ID, slot.Inst)
	}
	fmt.Fprintf(w, "  cycles %d, stalls %d, makespan %d\n\n",
		res.Cycles, res.Stalls, res.Makespan)
}

type summary struct {
	regions      int
	instructions int
	cycles       int
	stalls       int
	limitCycles  int
	forcedIssues int
}

func (s *summary) add(res sched.Result) {
	s.regions++
	s.instructions += len(res.Slots)
	s.cycles += res.Cycles
	s.stalls += res.Stalls
	s.limitCycles += res.IssueLimitCycles
	s.forcedIssues += res.ForcedIssues
}

func (s *summary) print(w io.Writer) {
	ipc := 0.0
	if s.cycles > 0 {
		ipc = float64(s.instructions) / float64(s.cycles)
	}

	fmt.Fprintf(w, "Regions: %d\n", s.regions)
	fmt.Fprintf(w, "Instructions: %d\n", s.instructions)
	fmt.Fprintf(w, "Cycles: %d\n", s.cycles)
	fmt.Fprintf(w, "IPC: %.2f\n", ipc)
	fmt.Fprintf(w, "Hazard stalls: %d\n", s.stalls)
	fmt.Fprintf(w, "Issue-width stalls: %d\n", s.limitCycles)
	if s.forcedIssues > 0 {
		fmt.Fprintf(w, "Forced issues: %d\n", s.forcedIssues)
	}
}
