// Package config provides YAML-based tuning of the simulation: physics
// constants, player handling, block composition, predation and layout.
package config

import (
	"fmt"
	"time"
)

// GameConfig contains every tunable of a stage session.
type GameConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Blocks    BlocksConfig    `yaml:"blocks"`
	Predation PredationConfig `yaml:"predation"`
	Bounds    BoundsConfig    `yaml:"bounds"`
	Layout    LayoutConfig    `yaml:"layout"`
	Audio     AudioConfig     `yaml:"audio"`
}

// PhysicsConfig defines world-level parameters.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`  // Design units per second squared, downward
	Substeps          int     `yaml:"substeps"` // Physics steps per rendered frame
	TerrainElasticity float64 `yaml:"terrain_elasticity"`
	TerrainFriction   float64 `yaml:"terrain_friction"`
	// ScaleWithDisplay multiplies gravity and player forces by the display's
	// vertical ratio, reproducing resolution-dependent handling.
	ScaleWithDisplay bool `yaml:"scale_with_display"`
}

// PlayerConfig defines the player ball.
type PlayerConfig struct {
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Elasticity    float64 `yaml:"elasticity"`
	Friction      float64 `yaml:"friction"`
	CustomGravity float64 `yaml:"custom_gravity"` // Extra downward force applied each frame
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Upward impulse magnitude
	MoveSpeed     float64 `yaml:"move_speed"`
	GroundNormal  float64 `yaml:"ground_normal"` // Minimum |normal.y| counted as ground contact
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
}

// BlocksConfig defines how animal blocks are built.
type BlocksConfig struct {
	CellSize   float64 `yaml:"cell_size"`
	CellMass   float64 `yaml:"cell_mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// PredationConfig defines carnivore reach and the dying animation window.
type PredationConfig struct {
	EatingRange  float64 `yaml:"eating_range"`
	DecaySeconds float64 `yaml:"decay_seconds"`
}

// DecayDuration returns the dying window as a duration.
func (p PredationConfig) DecayDuration() time.Duration {
	return time.Duration(p.DecaySeconds * float64(time.Second))
}

// BoundsConfig defines how far below the screen entities may fall.
type BoundsConfig struct {
	PlayerDeathMargin float64 `yaml:"player_death_margin"`
	BlockDeathMargin  float64 `yaml:"block_death_margin"`
}

// LayoutConfig places the drop zone and the animal palette in design units.
type LayoutConfig struct {
	DropZoneWidth    float64 `yaml:"drop_zone_width"`
	DropZoneTop      float64 `yaml:"drop_zone_top"`
	DropZoneHeight   float64 `yaml:"drop_zone_height"`
	PanelHeight      float64 `yaml:"panel_height"`
	PaletteStartX    float64 `yaml:"palette_start_x"`
	PaletteCellWidth float64 `yaml:"palette_cell_width"`
	PaletteRowHeight float64 `yaml:"palette_row_height"`
	PaletteColumns   int     `yaml:"palette_columns"`
	IconSize         float64 `yaml:"icon_size"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Validate reports the first tunable that would break the simulation.
func (c GameConfig) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"physics.substeps", c.Physics.Substeps > 0},
		{"player.radius", c.Player.Radius > 0},
		{"player.mass", c.Player.Mass > 0},
		{"player.move_speed", c.Player.MoveSpeed >= 0},
		{"blocks.cell_size", c.Blocks.CellSize > 0},
		{"blocks.cell_mass", c.Blocks.CellMass > 0},
		{"predation.eating_range", c.Predation.EatingRange >= 0},
		{"predation.decay_seconds", c.Predation.DecaySeconds >= 0},
		{"layout.palette_columns", c.Layout.PaletteColumns > 0},
		{"audio.volume", c.Audio.Volume >= 0 && c.Audio.Volume <= 1},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("config: invalid value for %s", chk.name)
		}
	}
	return nil
}
