package catalog

import (
	"fmt"
)

// validate checks every animal, then every stage against the animals.
func (c *Catalog) validate() error {
	if len(c.animals) == 0 {
		return fmt.Errorf("catalog: %w: no animals defined", ErrInvalidAnimal)
	}
	for i, a := range c.animals {
		if err := validateAnimal(a); err != nil {
			return err
		}
		if _, dup := c.index[a.ID]; dup {
			return fmt.Errorf("catalog: animal %q: %w: duplicate id", a.ID, ErrInvalidAnimal)
		}
		c.index[a.ID] = i
	}

	if len(c.stages) == 0 {
		return fmt.Errorf("catalog: %w: no stages defined", ErrInvalidStage)
	}
	for i, s := range c.stages {
		// Ids must be contiguous from 1; stages are already sorted.
		if s.ID != i+1 {
			return fmt.Errorf("catalog: stage %d: %w: expected id %d (ids must run 1..n)", s.ID, ErrInvalidStage, i+1)
		}
		if err := c.validateStage(s); err != nil {
			return err
		}
	}
	return nil
}

func validateAnimal(a Animal) error {
	if a.ID == "" {
		return fmt.Errorf("catalog: %w: empty animal id", ErrInvalidAnimal)
	}
	if len(a.Grid) == 0 {
		return fmt.Errorf("catalog: animal %q: %w: empty grid", a.ID, ErrInvalidAnimal)
	}

	width := len(a.Grid[0])
	for row, line := range a.Grid {
		if len(line) != width || width == 0 {
			return fmt.Errorf("catalog: animal %q: %w: row %d has length %d, expected %d",
				a.ID, ErrInvalidAnimal, row, len(line), width)
		}
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case CellEmpty, CellBody, CellHead:
			default:
				return fmt.Errorf("catalog: animal %q: %w: bad cell %q at row %d col %d",
					a.ID, ErrInvalidAnimal, line[col], row, col)
			}
		}
	}

	if a.MarkedCells() == 0 {
		return fmt.Errorf("catalog: animal %q: %w: no marked cells", a.ID, ErrInvalidAnimal)
	}
	if a.Carnivore && a.HeadCells() == 0 {
		return fmt.Errorf("catalog: animal %q: %w: carnivore without head cell", a.ID, ErrInvalidAnimal)
	}
	return nil
}

func (c *Catalog) validateStage(s Stage) error {
	if len(s.Animals) == 0 {
		return fmt.Errorf("catalog: stage %d: %w: no animals available", s.ID, ErrInvalidStage)
	}

	seen := make(map[string]bool, len(s.Animals))
	for _, id := range s.Animals {
		if _, ok := c.index[id]; !ok {
			return fmt.Errorf("catalog: stage %d: %w %q", s.ID, ErrUnknownAnimal, id)
		}
		if seen[id] {
			return fmt.Errorf("catalog: stage %d: %w: animal %q listed twice", s.ID, ErrInvalidStage, id)
		}
		seen[id] = true
	}

	for i, t := range s.Terrain {
		if t.W <= 0 || t.H <= 0 {
			return fmt.Errorf("catalog: stage %d: %w: terrain %d has non-positive size %gx%g",
				s.ID, ErrInvalidStage, i, t.W, t.H)
		}
	}

	if s.HazardFloor && s.HazardY <= 0 {
		return fmt.Errorf("catalog: stage %d: %w: hazard floor without hazard_y", s.ID, ErrInvalidStage)
	}
	return nil
}
