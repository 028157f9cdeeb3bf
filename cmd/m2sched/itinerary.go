package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/syifan/goseth"

	"github.com/sarchlab/m2sched/itinerary"
	"github.com/sarchlab/m2sched/timing/hazard"
)

func newItineraryCmd() *cobra.Command {
	itineraryCmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Print the functional units and classes of the itinerary.",
		Args:  cobra.NoArgs,
		RunE:  runItinerary,
	}

	itineraryCmd.Flags().String("export", "",
		"Write the itinerary to this file (YAML for .yaml/.yml, JSON otherwise)")
	itineraryCmd.Flags().Bool("json", false,
		"Print the detector state as JSON instead of tables")

	return itineraryCmd
}

func runItinerary(cmd *cobra.Command, _ []string) error {
	exportPath, _ := cmd.Flags().GetString("export")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	setup, err := loadMachine(cmd)
	if err != nil {
		return err
	}

	if exportPath != "" {
		if err := setup.data.SaveFile(exportPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Itinerary written to %s\n", exportPath)
	}

	det := hazard.NewScoreboardHazardDetector(setup.machine)

	if asJSON {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(det)
		serializer.SetMaxDepth(2)
		return serializer.Serialize(out)
	}

	printItinerary(out, setup, det)

	return nil
}

func printItinerary(
	w io.Writer,
	setup *machineSetup,
	det *hazard.ScoreboardHazardDetector,
) {
	m := setup.machine

	fmt.Fprintf(w, "Itinerary: %s\n", setup.source)
	fmt.Fprintf(w, "Units (%d):\n", m.NumUnits())
	for i := 0; i < m.NumUnits(); i++ {
		fmt.Fprintf(w, "  %2d  %s\n", i, m.UnitName(i))
	}

	fmt.Fprintf(w, "Classes (%d):\n", m.NumClasses())
	for c := 0; c < m.NumClasses(); c++ {
		stages := m.Stages(c)
		fmt.Fprintf(w, "  %s (depth %d)\n", m.ClassName(c), itinerary.Depth(stages))
		for i, s := range stages {
			fmt.Fprintf(w, "    stage %d: %d cycle(s) %s on [%s], next %d\n",
				i, s.Cycles, s.Kind, strings.Join(m.UnitNames(s.Units), " "), s.Next())
		}
	}

	fmt.Fprintf(w, "Issue width: %d\n", det.IssueWidth())
	fmt.Fprintf(w, "Scoreboard depth: %d\n", det.Depth())
	fmt.Fprintf(w, "Max look-ahead: %d\n", det.MaxLookAhead())
}
