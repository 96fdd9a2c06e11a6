package entity

import (
	"fmt"
	"time"

	"github.com/vovakirdan/animal-bridge/internal/block"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/physics"
)

// AnimalBlock is a placed animal. Once dying it leaves the physics world
// but keeps its last pose so it can fade out on screen.
type AnimalBlock struct {
	Handle physics.BodyHandle
	Comp   block.Composition

	pos        core.Vec
	angle      float64
	inWorld    bool
	dying      bool
	dyingSince time.Duration
}

// NewAnimalBlock inserts a composed block with its center at pos.
func NewAnimalBlock(w *physics.World, comp block.Composition, pos core.Vec) (*AnimalBlock, error) {
	if len(comp.Cells) == 0 {
		return nil, block.ErrEmptyShape
	}

	shapes := make([]physics.ShapeSpec, len(comp.Cells))
	for i, c := range comp.Cells {
		shapes[i] = physics.ShapeSpec{
			Verts:      c.Verts,
			Elasticity: comp.Params.Elasticity,
			Friction:   comp.Params.Friction,
			Mass:       comp.Params.CellMass,
			Filter:     physics.AnimalFilter,
		}
	}

	h, err := w.AddBody(physics.BodySpec{
		Type:     physics.BodyDynamic,
		Position: pos,
		Angle:    comp.Angle,
		Shapes:   shapes,
	})
	if err != nil {
		return nil, fmt.Errorf("entity: animal %s: %w", comp.AnimalID, err)
	}

	return &AnimalBlock{
		Handle:  h,
		Comp:    comp,
		pos:     pos,
		angle:   comp.Angle,
		inWorld: true,
	}, nil
}

// AnimalID returns the catalog id.
func (b *AnimalBlock) AnimalID() string {
	return b.Comp.AnimalID
}

// Carnivore reports whether the block can eat.
func (b *AnimalBlock) Carnivore() bool {
	return b.Comp.Carnivore
}

// Sync caches the body pose. Called once per frame while the body exists.
func (b *AnimalBlock) Sync(w *physics.World) {
	if !b.inWorld || !w.HasBody(b.Handle) {
		return
	}
	b.pos = w.Position(b.Handle)
	b.angle = w.Angle(b.Handle)
}

// Pose returns the last known position and angle.
func (b *AnimalBlock) Pose() (core.Vec, float64) {
	return b.pos, b.angle
}

// InWorld reports whether the block still has a physics body.
func (b *AnimalBlock) InWorld() bool {
	return b.inWorld
}

// Detach removes the body from the world, keeping the cached pose.
func (b *AnimalBlock) Detach(w *physics.World) {
	if !b.inWorld {
		return
	}
	b.Sync(w)
	w.RemoveBody(b.Handle)
	b.inWorld = false
}

// IsDying reports whether the block is fading out.
func (b *AnimalBlock) IsDying() bool {
	return b.dying
}

// StartDying marks the block as dying at now. Later calls do nothing and
// report false.
func (b *AnimalBlock) StartDying(now time.Duration) bool {
	if b.dying {
		return false
	}
	b.dying = true
	b.dyingSince = now
	return true
}

// DyingProgress returns how far the fade has gone, from 0 to 1.
func (b *AnimalBlock) DyingProgress(now, decay time.Duration) float64 {
	if !b.dying {
		return 0
	}
	if decay <= 0 {
		return 1
	}
	p := float64(now-b.dyingSince) / float64(decay)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Expired reports whether the fade has finished.
func (b *AnimalBlock) Expired(now, decay time.Duration) bool {
	return b.dying && now-b.dyingSince > decay
}

func (b *AnimalBlock) toWorld(local core.Vec) core.Vec {
	return local.Rotate(b.angle).Add(b.pos)
}

// WorldVertices returns each cell's corners in world space.
func (b *AnimalBlock) WorldVertices() [][]core.Vec {
	out := make([][]core.Vec, len(b.Comp.Cells))
	for i, c := range b.Comp.Cells {
		verts := make([]core.Vec, len(c.Verts))
		for j, v := range c.Verts {
			verts[j] = b.toWorld(v)
		}
		out[i] = verts
	}
	return out
}

// WorldHeads returns the head cell centers in world space.
func (b *AnimalBlock) WorldHeads() []core.Vec {
	out := make([]core.Vec, len(b.Comp.Heads))
	for i, h := range b.Comp.Heads {
		out[i] = b.toWorld(h)
	}
	return out
}

// WorldCells returns each cell center in world space.
func (b *AnimalBlock) WorldCells() []core.Vec {
	out := make([]core.Vec, len(b.Comp.Cells))
	for i, c := range b.Comp.Cells {
		out[i] = b.toWorld(c.Offset)
	}
	return out
}
