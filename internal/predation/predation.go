// Package predation runs the per-frame lifecycle rules for animal blocks:
// carnivores eating nearby herbivores, blocks dying out of bounds, and
// dead blocks fading out of the render list.
package predation

import (
	"time"

	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/entity"
	"github.com/vovakirdan/animal-bridge/internal/physics"
)

// Engine holds the lifecycle thresholds for one stage.
type Engine struct {
	EatingRange   float64       // A prey closer than this to a head is eaten
	DecayDuration time.Duration // How long a dying block stays visible
	BlockDeathY   float64       // Body y beyond which a block dies without a hazard floor
	HazardFloor   bool
	HazardY       float64 // Any vertex beyond this kills the block when HazardFloor is set
}

// Report summarizes one Run.
type Report struct {
	Eaten  int // Prey eaten this frame
	Fallen int // Blocks that left the stage this frame
	Purged int // Dying blocks dropped from the list
}

// Run applies the rules in order: predation, bounds, purge. Blocks that
// start dying leave the physics world at once. It returns the blocks that
// are still alive or fading.
func (e Engine) Run(w *physics.World, blocks []*entity.AnimalBlock, now time.Duration) ([]*entity.AnimalBlock, Report) {
	var rep Report

	for _, b := range blocks {
		if !b.IsDying() {
			b.Sync(w)
		}
	}

	for _, prey := range e.preyInReach(w, blocks) {
		if prey.StartDying(now) {
			rep.Eaten++
		}
		prey.Detach(w)
	}

	for _, b := range blocks {
		if b.IsDying() || !e.outOfBounds(b) {
			continue
		}
		b.StartDying(now)
		b.Detach(w)
		rep.Fallen++
	}

	kept := blocks[:0]
	for _, b := range blocks {
		if b.Expired(now, e.DecayDuration) {
			rep.Purged++
			continue
		}
		kept = append(kept, b)
	}
	// Clear the tail so purged blocks can be collected.
	for i := len(kept); i < len(blocks); i++ {
		blocks[i] = nil
	}

	return kept, rep
}

// preyInReach returns each herbivore within eating range of some carnivore
// head, once, in list order.
func (e Engine) preyInReach(w *physics.World, blocks []*entity.AnimalBlock) []*entity.AnimalBlock {
	marked := make(map[*entity.AnimalBlock]bool)

	for _, hunter := range blocks {
		if hunter.IsDying() || !hunter.Carnivore() {
			continue
		}
		heads := hunter.WorldHeads()
		if len(heads) == 0 {
			continue
		}

		for _, prey := range blocks {
			if prey == hunter || prey.IsDying() || prey.Carnivore() || marked[prey] {
				continue
			}
			if e.inReach(w, heads, prey) {
				marked[prey] = true
			}
		}
	}

	var out []*entity.AnimalBlock
	for _, b := range blocks {
		if marked[b] {
			out = append(out, b)
		}
	}
	return out
}

func (e Engine) inReach(w *physics.World, heads []core.Vec, prey *entity.AnimalBlock) bool {
	for _, h := range heads {
		if d, ok := w.NearestDistance(h, prey.Handle); ok && d < e.EatingRange {
			return true
		}
	}
	return false
}

func (e Engine) outOfBounds(b *entity.AnimalBlock) bool {
	if !e.HazardFloor {
		pos, _ := b.Pose()
		return pos.Y > e.BlockDeathY
	}
	for _, cell := range b.WorldVertices() {
		for _, v := range cell {
			if v.Y > e.HazardY {
				return true
			}
		}
	}
	return false
}
