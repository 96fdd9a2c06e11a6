package session

import (
	"fmt"

	"github.com/vovakirdan/animal-bridge/internal/block"
	"github.com/vovakirdan/animal-bridge/internal/core"
)

// BlockView is a placed animal as the renderer sees it.
type BlockView struct {
	AnimalID  string
	Carnivore bool
	Pos       core.Vec
	Angle     float64
	Cells     [][]core.Vec // Cell corners in world space
	Heads     []core.Vec
	Dying     float64 // Fade progress, 0 when alive
}

// DragView is the candidate under the pointer with its rotated cells.
type DragView struct {
	DragCandidate
	Cells []core.Box
	Heads []core.Box
	Valid bool // Pointer is inside the drop zone
}

// HUD holds the counters shown during play.
type HUD struct {
	Stage      int
	StageName  string
	BlocksUsed int
	Eaten      int
	Elapsed    float64
	Time       string
}

// Frame is everything needed to draw one tick, in design units.
type Frame struct {
	Width, Height float64
	State         State
	Paused        bool

	Terrain      []core.Box
	HazardFloor  bool
	HazardY      float64
	Player       core.Vec
	PlayerRadius float64
	Grounded     bool
	Blocks       []BlockView

	GoalPole  core.Box
	GoalCloth [3]core.Vec

	DropZone core.Box
	Restart  core.Box
	Panel    core.Box
	Palette  []PaletteSlot
	Drag     *DragView
	HUD      HUD
}

// FormatSeconds renders elapsed time the way the HUD and rankings show it.
func FormatSeconds(sec float64) string {
	return fmt.Sprintf("%.2fs", sec)
}

// Snapshot captures the current state for rendering.
func (s *Session) Snapshot() Frame {
	f := Frame{
		Width:       s.width,
		Height:      s.height,
		State:       s.state,
		Paused:      s.paused,
		HazardFloor: s.opts.Stage.HazardFloor,
		HazardY:     s.opts.Stage.HazardY,
		GoalPole:    s.flag.Pole(),
		GoalCloth:   s.flag.Cloth(),
		DropZone:    s.layout.dropZone,
		Restart:     s.layout.restart,
		Panel:       s.layout.panel,
		Palette:     append([]PaletteSlot(nil), s.layout.palette...),
	}

	for _, t := range s.opts.Stage.Terrain {
		f.Terrain = append(f.Terrain, t.Box())
	}

	if s.world != nil {
		f.Player = s.player.Position(s.world)
		f.PlayerRadius = s.player.Radius()
		f.Grounded = s.player.Grounded
	}

	now := s.clock.Now()
	decay := s.cfg.Predation.DecayDuration()
	for _, b := range s.blocks {
		pos, angle := b.Pose()
		f.Blocks = append(f.Blocks, BlockView{
			AnimalID:  b.AnimalID(),
			Carnivore: b.Carnivore(),
			Pos:       pos,
			Angle:     angle,
			Cells:     b.WorldVertices(),
			Heads:     b.WorldHeads(),
			Dying:     b.DyingProgress(now, decay),
		})
	}

	if s.drag != nil {
		f.Drag = s.dragView(*s.drag)
	}

	elapsed := s.Elapsed().Seconds()
	if s.cleared != nil {
		elapsed = s.cleared.ElapsedSeconds
	}
	f.HUD = HUD{
		Stage:      s.opts.Stage.ID,
		StageName:  s.opts.Stage.Name,
		BlocksUsed: s.blocksUsed,
		Eaten:      s.eaten,
		Elapsed:    elapsed,
		Time:       FormatSeconds(elapsed),
	}
	return f
}

func (s *Session) dragView(d DragCandidate) *DragView {
	v := &DragView{DragCandidate: d, Valid: s.layout.dropZone.Contains(d.Pos)}
	a, ok := s.opts.Catalog.Animal(d.AnimalID)
	if !ok {
		return v
	}

	size := s.cfg.Blocks.CellSize
	cells, cols, rows := block.Rotated(a, d.Rotation)
	left := d.Pos.X - float64(cols)*size/2
	top := d.Pos.Y - float64(rows)*size/2
	for _, c := range cells {
		box := core.Box{X: left + float64(c.Col)*size, Y: top + float64(c.Row)*size, W: size, H: size}
		v.Cells = append(v.Cells, box)
		if c.Head && a.Carnivore {
			v.Heads = append(v.Heads, box)
		}
	}
	return v
}
