package physics

import (
	"fmt"

	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/core"
)

// LevelParams sizes the level boundaries and terrain surface.
type LevelParams struct {
	Width      float64
	Height     float64
	Elasticity float64
	Friction   float64
}

// BoxVerts returns the corners of a w x h rectangle centered on the origin.
func BoxVerts(w, h float64) []core.Vec {
	hw, hh := w/2, h/2
	return []core.Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
}

// BuildLevel inserts the stage terrain, a ceiling strip above the screen
// and walls on both sides. There is no floor: falling off the bottom kills.
func BuildLevel(w *World, terrain []catalog.Terrain, p LevelParams) ([]BodyHandle, error) {
	type slab struct {
		box    core.Box
		filter Filter
	}

	slabs := make([]slab, 0, len(terrain)+3)
	for _, t := range terrain {
		slabs = append(slabs, slab{box: t.Box(), filter: TerrainFilter})
	}
	slabs = append(slabs,
		slab{box: core.BoxFromCenter(p.Width/2, -10, p.Width, 20), filter: CeilingFilter},
		slab{box: core.BoxFromCenter(-10, p.Height/2, 20, p.Height), filter: TerrainFilter},
		slab{box: core.BoxFromCenter(p.Width+10, p.Height/2, 20, p.Height), filter: TerrainFilter},
	)

	handles := make([]BodyHandle, 0, len(slabs))
	for i, s := range slabs {
		h, err := w.AddBody(BodySpec{
			Type:     BodyStatic,
			Position: s.box.Center(),
			Shapes: []ShapeSpec{{
				Verts:      BoxVerts(s.box.W, s.box.H),
				Elasticity: p.Elasticity,
				Friction:   p.Friction,
				Filter:     s.filter,
			}},
		})
		if err != nil {
			return handles, fmt.Errorf("physics: level slab %d: %w", i, err)
		}
		handles = append(handles, h)
	}
	return handles, nil
}
