// Package main provides the entry point for M2Sched.
// M2Sched schedules instruction sequences against a scoreboard of
// functional-unit reservations.
//
// For the full CLI, use: go run ./cmd/m2sched
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("M2Sched - scoreboard hazard detection for instruction scheduling")
	fmt.Println("Built on Akita hooks")
	fmt.Println("")
	fmt.Println("Usage: m2sched <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  schedule <program>   Schedule a program region by region")
	fmt.Println("  itinerary            Print or export the pipeline itinerary")
	fmt.Println("  events <db>          List recorded detector events")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/m2sched' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/m2sched' instead.")
	}
}
