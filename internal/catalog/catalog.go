// Package catalog holds the static game data: the animal shape catalog and
// the stage definitions. Data is validated once at load time; the rest of
// the game treats a *Catalog as read-only.
package catalog

import (
	"errors"
	"sort"

	"github.com/vovakirdan/animal-bridge/internal/core"
)

// Grid cell markers.
const (
	CellEmpty = '0'
	CellBody  = '1'
	CellHead  = '2'
)

var (
	// ErrUnknownAnimal is returned when an animal id is not in the catalog.
	ErrUnknownAnimal = errors.New("unknown animal")
	// ErrUnknownStage is returned when a stage id is not defined.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrInvalidAnimal marks a malformed shape definition.
	ErrInvalidAnimal = errors.New("invalid animal")
	// ErrInvalidStage marks a malformed stage definition.
	ErrInvalidStage = errors.New("invalid stage")
)

// Animal is one entry of the shape catalog.
// Grid rows are read top to bottom; each rune is CellEmpty, CellBody or CellHead.
type Animal struct {
	ID        string   `yaml:"id" toml:"id"`
	Name      string   `yaml:"name" toml:"name"`
	Carnivore bool     `yaml:"carnivore" toml:"carnivore"`
	Grid      []string `yaml:"grid" toml:"grid"`
}

// Size returns the grid dimensions in cells.
func (a Animal) Size() (cols, rows int) {
	if len(a.Grid) == 0 {
		return 0, 0
	}
	return len(a.Grid[0]), len(a.Grid)
}

// At returns the marker at the given column and row, CellEmpty outside the grid.
func (a Animal) At(col, row int) byte {
	if row < 0 || row >= len(a.Grid) || col < 0 || col >= len(a.Grid[row]) {
		return CellEmpty
	}
	return a.Grid[row][col]
}

// MarkedCells counts body and head cells.
func (a Animal) MarkedCells() int {
	n := 0
	for _, row := range a.Grid {
		for i := 0; i < len(row); i++ {
			if row[i] == CellBody || row[i] == CellHead {
				n++
			}
		}
	}
	return n
}

// HeadCells counts head cells.
func (a Animal) HeadCells() int {
	n := 0
	for _, row := range a.Grid {
		for i := 0; i < len(row); i++ {
			if row[i] == CellHead {
				n++
			}
		}
	}
	return n
}

// DisplayName returns Name, or the id when no name is set.
func (a Animal) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// Terrain is a static rectangle given by its center and size.
type Terrain struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// Box converts the terrain rectangle to a top-left anchored box.
func (t Terrain) Box() core.Box {
	return core.BoxFromCenter(t.X, t.Y, t.W, t.H)
}

// Stage is one playable level.
type Stage struct {
	ID          int       `yaml:"id" toml:"id"`
	Name        string    `yaml:"name" toml:"name"`
	Animals     []string  `yaml:"animals" toml:"animals"`
	Terrain     []Terrain `yaml:"terrain" toml:"terrain"`
	Goal        core.Vec  `yaml:"goal" toml:"goal"` // Flag pole base
	HazardFloor bool      `yaml:"hazard_floor" toml:"hazard_floor"`
	HazardY     float64   `yaml:"hazard_y" toml:"hazard_y"`
}

// Catalog is the validated set of animals and stages.
type Catalog struct {
	animals []Animal
	stages  []Stage
	index   map[string]int
}

// New validates the data and builds a catalog. Stages are ordered by id.
func New(animals []Animal, stages []Stage) (*Catalog, error) {
	c := &Catalog{
		animals: append([]Animal(nil), animals...),
		stages:  append([]Stage(nil), stages...),
		index:   make(map[string]int, len(animals)),
	}
	sort.SliceStable(c.stages, func(i, j int) bool {
		return c.stages[i].ID < c.stages[j].ID
	})

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Animal looks up an animal by id.
func (c *Catalog) Animal(id string) (Animal, bool) {
	i, ok := c.index[id]
	if !ok {
		return Animal{}, false
	}
	return c.animals[i], true
}

// Animals returns all animals in definition order.
func (c *Catalog) Animals() []Animal {
	return append([]Animal(nil), c.animals...)
}

// Stage looks up a stage by id.
func (c *Catalog) Stage(id int) (Stage, bool) {
	if id < 1 || id > len(c.stages) {
		return Stage{}, false
	}
	return c.stages[id-1], true
}

// Stages returns all stages ordered by id.
func (c *Catalog) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// StageCount returns the number of stages. Ids run from 1 to StageCount.
func (c *Catalog) StageCount() int {
	return len(c.stages)
}
