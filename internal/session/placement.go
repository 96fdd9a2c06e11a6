package session

import (
	"fmt"

	"github.com/vovakirdan/animal-bridge/internal/block"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/entity"
)

// Place drops an animal of the stage with its center at the given point.
// Each animal can be placed once per attempt.
func (s *Session) Place(animalID string, at core.Vec, rotation int) error {
	if s.state != StatePlaying || s.world == nil {
		return ErrNotPlaying
	}

	idx := -1
	for i, slot := range s.layout.palette {
		if slot.AnimalID == animalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("session: %w %q", catalog.ErrUnknownAnimal, animalID)
	}
	if s.layout.palette[idx].Remaining <= 0 {
		return fmt.Errorf("%w: %s", ErrAnimalUsed, animalID)
	}
	if !s.layout.dropZone.Contains(at) {
		return ErrOutsideDropZone
	}

	a, _ := s.opts.Catalog.Animal(animalID)
	comp, err := block.Compose(a, s.blockParams(), rotation)
	if err != nil {
		return fmt.Errorf("session: compose %s: %w", animalID, err)
	}
	b, err := entity.NewAnimalBlock(s.world, comp, at)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.blocks = append(s.blocks, b)
	s.layout.palette[idx].Remaining = 0
	s.blocksUsed++
	s.logger.Debug("block placed", "animal", animalID, "x", at.X, "y", at.Y, "rotation", comp.Rotation)
	return nil
}

// BeginDrag starts dragging the palette animal under p. It reports false
// when p hits no icon or the animal is spent.
func (s *Session) BeginDrag(p core.Vec) bool {
	if s.state != StatePlaying {
		return false
	}
	i := s.layout.slotAt(p)
	if i < 0 || s.layout.palette[i].Remaining <= 0 {
		return false
	}
	s.drag = &DragCandidate{AnimalID: s.layout.palette[i].AnimalID, Pos: p}
	return true
}

// MoveDrag follows the pointer.
func (s *Session) MoveDrag(p core.Vec) {
	if s.drag != nil {
		s.drag.Pos = p
	}
}

// RotateDrag turns the candidate a quarter turn clockwise.
func (s *Session) RotateDrag() bool {
	if s.drag == nil {
		return false
	}
	s.drag.Rotation = block.NextRotation(s.drag.Rotation)
	return true
}

// CancelDrag drops the candidate without placing it.
func (s *Session) CancelDrag() {
	s.drag = nil
}

// Drop releases the candidate at p. Outside the drop zone the drag is
// cancelled and nothing changes.
func (s *Session) Drop(p core.Vec) (bool, error) {
	if s.drag == nil {
		return false, nil
	}
	d := *s.drag
	s.drag = nil
	if !s.layout.dropZone.Contains(p) {
		return false, nil
	}
	if err := s.Place(d.AnimalID, p, d.Rotation); err != nil {
		return false, err
	}
	return true, nil
}
