package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check config, animal and stage files",
	Long: `Loads the game config and catalog exactly as 'play' would and reports
the first problem found. Use it after editing custom data files.

Examples:
  animalbridge validate
  animalbridge validate --animals ./animals.toml --stages ./stages.toml
  animalbridge validate --config ./game.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	animals := e.catalog.Animals()
	carnivores := 0
	for _, a := range animals {
		if a.Carnivore {
			carnivores++
		}
	}

	fmt.Println("OK")
	fmt.Printf("  animals: %d (%d carnivores)\n", len(animals), carnivores)
	fmt.Printf("  stages:  %d\n", e.catalog.StageCount())
	fmt.Printf("  physics: gravity %.0f, %d substeps\n", e.cfg.Physics.Gravity, e.cfg.Physics.Substeps)
	return nil
}
