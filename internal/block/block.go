// Package block turns an animal's shape mask into cell geometry.
// It is pure: the entity package turns a Composition into a physics body.
package block

import (
	"errors"
	"math"

	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/core"
)

// ErrEmptyShape is returned when a mask has no marked cells.
var ErrEmptyShape = errors.New("block: shape has no cells")

// Params are the physical properties shared by every cell.
type Params struct {
	CellSize   float64
	CellMass   float64
	Elasticity float64
	Friction   float64
}

// Cell is one square of a composed block, in body-local coordinates.
type Cell struct {
	Offset core.Vec
	Verts  []core.Vec // Four corners around Offset
	Head   bool
	Col    int
	Row    int
}

// Composition is the body-local geometry of an animal block.
type Composition struct {
	AnimalID  string
	Carnivore bool
	Cells     []Cell
	Heads     []core.Vec // Head cell centers; empty unless Carnivore
	Mass      float64
	Rotation  int     // Degrees, one of 0, 90, 180, 270
	Angle     float64 // Rotation in radians, applied to the whole body
	Params    Params
}

// Compose builds the cells of an animal. Offsets are measured from the
// center of the mask's bounding grid, so rotation turns the block around
// that center.
func Compose(a catalog.Animal, p Params, rotation int) (Composition, error) {
	cols, rows := a.Size()
	rotation = NormalizeRotation(rotation)

	comp := Composition{
		AnimalID:  a.ID,
		Carnivore: a.Carnivore,
		Rotation:  rotation,
		Angle:     float64(rotation) * math.Pi / 180,
		Params:    p,
	}

	half := p.CellSize / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			mark := a.At(col, row)
			if mark != catalog.CellBody && mark != catalog.CellHead {
				continue
			}
			off := core.V(
				(float64(col)-float64(cols)/2+0.5)*p.CellSize,
				(float64(row)-float64(rows)/2+0.5)*p.CellSize,
			)
			cell := Cell{
				Offset: off,
				Verts: []core.Vec{
					off.Add(core.V(-half, -half)),
					off.Add(core.V(half, -half)),
					off.Add(core.V(half, half)),
					off.Add(core.V(-half, half)),
				},
				Head: mark == catalog.CellHead,
				Col:  col,
				Row:  row,
			}
			comp.Cells = append(comp.Cells, cell)
			if cell.Head && a.Carnivore {
				comp.Heads = append(comp.Heads, off)
			}
		}
	}

	if len(comp.Cells) == 0 {
		return Composition{}, ErrEmptyShape
	}
	comp.Mass = p.CellMass * float64(len(comp.Cells))
	return comp, nil
}

// NormalizeRotation wraps degrees into [0, 360) and snaps to the nearest
// quarter turn.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return ((deg + 45) / 90 * 90) % 360
}

// NextRotation returns the rotation a quarter turn after deg.
func NextRotation(deg int) int {
	return NormalizeRotation(NormalizeRotation(deg) + 90)
}

// Footprint returns the width and height of the rotated bounding grid.
func Footprint(a catalog.Animal, cellSize float64, rotation int) (w, h float64) {
	cols, rows := a.Size()
	w, h = float64(cols)*cellSize, float64(rows)*cellSize
	if r := NormalizeRotation(rotation); r == 90 || r == 270 {
		return h, w
	}
	return w, h
}

// Rotated returns the cell grid coordinates after rotation, in a grid of
// the returned size. Used for icons and drag previews.
func Rotated(a catalog.Animal, rotation int) (cells []Cell, cols, rows int) {
	c, r := a.Size()
	rot := NormalizeRotation(rotation)
	cols, rows = c, r
	if rot == 90 || rot == 270 {
		cols, rows = r, c
	}

	for row := 0; row < r; row++ {
		for col := 0; col < c; col++ {
			mark := a.At(col, row)
			if mark != catalog.CellBody && mark != catalog.CellHead {
				continue
			}
			nc, nr := col, row
			switch rot {
			case 90:
				nc, nr = r-1-row, col
			case 180:
				nc, nr = c-1-col, r-1-row
			case 270:
				nc, nr = row, c-1-col
			}
			cells = append(cells, Cell{Col: nc, Row: nr, Head: mark == catalog.CellHead})
		}
	}
	return cells, cols, rows
}
