package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/animal-bridge/internal/app"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List stages and unlock status",
	Long:  `Shows every stage with its animal count, lock status and best clear.`,
	Args:  cobra.NoArgs,
	RunE:  runStages,
}

func runStages(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	unlocked := store.LoadProgress()
	rankings := store.LoadRankings()
	stages := e.catalog.Stages()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range stages {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "#", maxNameLen, "Name", "Animals", "Status", "Best")
	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "-", maxNameLen, "----", "-------", "------", "----")

	for _, s := range stages {
		status := "locked"
		if s.ID <= unlocked {
			status = "open"
		}
		best := "-"
		if list := rankings[s.ID]; len(list) > 0 {
			top := list[0]
			best = fmt.Sprintf("%s: %d blocks, %d eaten, %s", top.Name, top.Blocks, top.Eaten, app.FormatClearTime(top.Time))
		}
		fmt.Printf("  %-3d  %-*s  %-7d  %-6s  %s\n", s.ID, maxNameLen, s.Name, len(s.Animals), status, best)
	}

	fmt.Println()
	fmt.Println("Run 'animalbridge play' to start.")
	return nil
}
