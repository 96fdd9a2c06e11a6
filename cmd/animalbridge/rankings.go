package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/animal-bridge/internal/app"
)

var flagLimit int

var rankingsCmd = &cobra.Command{
	Use:   "rankings <stage>",
	Short: "Show the ranking of a stage",
	Long: `Display the ranking of the specified stage. Entries are ordered by
blocks used, then blocks eaten, then clear time.

Examples:
  animalbridge rankings 1
  animalbridge rankings 4 --limit 3 --store sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: runRankings,
}

func init() {
	rankingsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show (0 = all)")
}

func runRankings(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid stage %q", args[0])
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	stage, ok := e.catalog.Stage(id)
	if !ok {
		return fmt.Errorf("unknown stage %d (have 1-%d)", id, e.catalog.StageCount())
	}

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries := store.LoadRankings()[id]

	fmt.Printf("Ranking - Stage %d: %s\n", stage.ID, stage.Name)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No clears recorded yet.")
		return nil
	}
	if flagLimit > 0 && len(entries) > flagLimit {
		entries = entries[:flagLimit]
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "Rank", "Name", "Blocks", "Eaten", "Time")
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "----", "----", "------", "-----", "----")

	for i, entry := range entries {
		fmt.Printf("  %-4d  %-16s  %-6d  %-5d  %s\n", i+1, entry.Name, entry.Blocks, entry.Eaten, app.FormatClearTime(entry.Time))
	}
	return nil
}
