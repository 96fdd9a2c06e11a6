package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Gravity:           981,
			Substeps:          5,
			TerrainElasticity: 0.4,
			TerrainFriction:   0.9,
		},
		Player: PlayerConfig{
			Radius:        20,
			Mass:          10,
			Elasticity:    0.1,
			Friction:      0.7,
			CustomGravity: 18000,
			JumpImpulse:   4000,
			MoveSpeed:     250,
			GroundNormal:  0.7,
			StartX:        80,
			StartY:        280,
		},
		Blocks: BlocksConfig{
			CellSize:   56.25,
			CellMass:   100,
			Elasticity: 0.2,
			Friction:   1.0,
		},
		Predation: PredationConfig{
			EatingRange:  40,
			DecaySeconds: 0.6,
		},
		Bounds: BoundsConfig{
			PlayerDeathMargin: 50,
			BlockDeathMargin:  100,
		},
		Layout: LayoutConfig{
			DropZoneWidth:    680,
			DropZoneTop:      30,
			DropZoneHeight:   130,
			PanelHeight:      120,
			PaletteStartX:    140,
			PaletteCellWidth: 160,
			PaletteRowHeight: 60,
			PaletteColumns:   7,
			IconSize:         60,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
	}
}
