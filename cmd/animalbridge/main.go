// animalbridge is a terminal physics-puzzle platformer: drop animal-shaped
// blocks to bridge gaps and walk the player to the flag.
//
// Usage:
//
//	animalbridge play [stage]       - Start the game (menu flow, or jump to a stage)
//	animalbridge stages             - List stages and their lock status
//	animalbridge rankings <stage>   - Show the ranking of a stage
//	animalbridge validate           - Check config, animal and stage files
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--data-dir <path>    - Rankings and progress directory (default: ~/.animalbridge)
//	--config <path>      - Game config YAML
//	--animals <path>     - Animal catalog (.yaml, .yml or .toml)
//	--stages <path>      - Stage definitions (.yaml, .yml or .toml)
//	--store <backend>    - Persistence backend: json or sqlite
//	--log-file <path>    - Log destination (default: ~/.animalbridge/animalbridge.log)
//	--verbose            - Debug logging
//	--mute               - Disable sound cues
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/animal-bridge/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagDataDir string
	flagConfig  string
	flagAnimals string
	flagStages  string
	flagStore   string
	flagLogFile string
	flagVerbose bool
	flagMute    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "animalbridge",
	Short: "Animal Bridge - build bridges out of animals in your terminal",
	Long: `Animal Bridge is a 2D physics puzzle platformer. Drag animal-shaped
blocks from the palette into the drop zone, let them fall into place and
walk across them to reach the flag. Carnivores eat herbivores they touch,
so plan the order of your drops.

Available commands:
  play      - Start the game
  stages    - List stages and unlock status
  rankings  - View the ranking of a stage
  validate  - Check data files without playing

Examples:
  animalbridge play
  animalbridge play 3 --name alice
  animalbridge stages --store sqlite
  animalbridge rankings 1
  animalbridge validate --stages ./my-stages.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", storage.DefaultDir(), "Directory for rankings and progress")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAnimals, "animals", "", "Path to animal catalog (.yaml, .yml, .toml)")
	rootCmd.PersistentFlags().StringVar(&flagStages, "stages", "", "Path to stage definitions (.yaml, .yml, .toml)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storage.BackendJSON, "Persistence backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", filepath.Join(storage.DefaultDir(), "animalbridge.log"), "Log file path")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound cues")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(validateCmd)
}
