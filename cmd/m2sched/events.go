package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/m2sched/tracing"
)

func newEventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events <db>",
		Short: "List the detector events recorded by `schedule --record`.",
		Args:  cobra.ExactArgs(1),
		RunE:  runEvents,
	}

	eventsCmd.Flags().String("region", "",
		"Only print events of this region; without it, regions are listed")
	eventsCmd.Flags().Bool("all", false, "Print the events of every region")

	return eventsCmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	region, _ := cmd.Flags().GetString("region")
	all, _ := cmd.Flags().GetBool("all")
	out := cmd.OutOrStdout()

	reader, err := tracing.NewSQLiteEventReader(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if region == "" && !all {
		regions, err := reader.ListRegions()
		if err != nil {
			return err
		}
		for _, r := range regions {
			fmt.Fprintln(out, r)
		}
		return nil
	}

	events, err := reader.ListEvents(region)
	if err != nil {
		return err
	}

	for _, e := range events {
		fmt.Fprintf(out, "%s %5d %5d %-8s", e.Region, e.Seq, e.Cycle, e.Kind)
		if e.InstID >= 0 {
			fmt.Fprintf(out, " %d %s", e.InstID, e.Op)
		}
		if e.Detail != "" {
			fmt.Fprintf(out, " %s", e.Detail)
		}
		fmt.Fprintln(out)
	}

	return nil
}
