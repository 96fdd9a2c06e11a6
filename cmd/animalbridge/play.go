package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/animal-bridge/internal/app"
	"github.com/vovakirdan/animal-bridge/internal/audio/beepsink"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/platform/tui"
)

var (
	flagName       string
	flagMonochrome bool
	flagShotDir    string
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Play the game",
	Long: `Start the game at the name entry screen, or jump straight into an
unlocked stage when a stage number and --name are given.

Controls:
  Mouse drag    - Drag an animal from the palette into the drop zone
  Right click   - Cancel the drag
  R             - Rotate the dragged animal by 90 degrees
  A/D, Arrows   - Move
  Space         - Jump
  F5, Ctrl+R    - Restart the stage
  H, ?          - Help (pauses the stage)
  Tab, Esc      - Back to stage select
  Q, Ctrl+C     - Quit

Examples:
  animalbridge play
  animalbridge play --name alice
  animalbridge play 2 --name alice
  animalbridge play --fps 30 --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (skips name entry)")
	playCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Disable colors")
	playCmd.Flags().StringVar(&flagShotDir, "screenshot-dir", ".", "Directory for Ctrl+S screenshots")
}

func runPlay(cmd *cobra.Command, args []string) error {
	stage := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid stage %q", args[0])
		}
		if flagName == "" {
			return fmt.Errorf("--name is required to start stage %d directly", n)
		}
		stage = n
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if stage != 0 {
		if _, ok := e.catalog.Stage(stage); !ok {
			return fmt.Errorf("unknown stage %d (have 1-%d)", stage, e.catalog.StageCount())
		}
	}

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sink, closeSink := beepsink.Open(e.cfg.Audio, flagMute, e.logger)
	defer closeSink()

	rt := runtimeConfig()
	flow, err := app.New(app.Options{
		Catalog:  e.catalog,
		Store:    store,
		Config:   e.cfg,
		Viewport: rt.Viewport,
		TickRate: rt.TickRate,
		NewClock: func() core.Clock { return core.NewWallClock() },
		Sink:     sink,
		Logger:   e.logger,
	})
	if err != nil {
		return err
	}

	e.logger.Info("starting", "fps", rt.TickRate, "store", flagStore, "stages", e.catalog.StageCount())

	if err := tui.Run(tui.Options{
		Flow:          flow,
		Catalog:       e.catalog,
		TickRate:      rt.TickRate,
		Width:         int(rt.Viewport.Width),
		Height:        int(rt.Viewport.Height),
		Design:        core.DesignViewport(),
		PlayerName:    flagName,
		StartStage:    stage,
		Monochrome:    flagMonochrome,
		ScreenshotDir: flagShotDir,
		Logger:        e.logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
