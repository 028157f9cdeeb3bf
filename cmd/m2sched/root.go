package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/m2sched/itinerary"
	"github.com/sarchlab/m2sched/timing/latency"
)

// itineraryEnv names the environment variable holding the default
// itinerary file.
const itineraryEnv = "M2SCHED_ITINERARY"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "m2sched",
		Short: "Schedule instruction sequences against a pipeline itinerary.",
		Long: `m2sched places instructions cycle by cycle using a scoreboard ` +
			`of functional-unit reservations. Without an itinerary file it ` +
			`models an Apple M2 performance core.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("itinerary", "",
		"Itinerary file (JSON or YAML), defaults to $"+itineraryEnv)
	rootCmd.PersistentFlags().String("config", "",
		"Timing configuration JSON file for the built-in M2 itinerary")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newItineraryCmd())
	rootCmd.AddCommand(newEventsCmd())

	return rootCmd
}

// machineSetup is the pipeline model selected by the persistent flags.
type machineSetup struct {
	data    *itinerary.Data
	machine *itinerary.Machine
	timing  *latency.TimingConfig
	source  string
}

func loadMachine(cmd *cobra.Command) (*machineSetup, error) {
	configPath, _ := cmd.Flags().GetString("config")
	itinPath, _ := cmd.Flags().GetString("itinerary")
	if itinPath == "" {
		itinPath = os.Getenv(itineraryEnv)
	}

	setup := &machineSetup{timing: latency.DefaultTimingConfig()}
	if configPath != "" {
		cfg, err := latency.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading timing config: %w", err)
		}
		setup.timing = cfg
	}

	if itinPath != "" {
		data, err := itinerary.LoadFile(itinPath)
		if err != nil {
			return nil, fmt.Errorf("loading itinerary: %w", err)
		}
		setup.data = data
		setup.source = itinPath
	} else {
		setup.data = latency.M2Itinerary(setup.timing)
		setup.source = "built-in M2"
	}

	machine, err := setup.data.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling itinerary %s: %w", setup.source, err)
	}
	setup.machine = machine

	return setup, nil
}
