package entity

import "github.com/vovakirdan/animal-bridge/internal/core"

// Flag pole dimensions in design units.
const (
	poleWidth  = 5
	poleHeight = 60
	goalWidth  = 40
)

// Flag marks the goal. Base is the bottom of the pole.
type Flag struct {
	Base core.Vec
}

// NewFlag creates a flag standing at base.
func NewFlag(base core.Vec) Flag {
	return Flag{Base: base}
}

// Pole returns the pole rectangle.
func (f Flag) Pole() core.Box {
	return core.Box{X: f.Base.X, Y: f.Base.Y - poleHeight, W: poleWidth, H: poleHeight}
}

// Cloth returns the pennant triangle.
func (f Flag) Cloth() [3]core.Vec {
	top := f.Base.Y - poleHeight
	x := f.Base.X + poleWidth
	return [3]core.Vec{
		{X: x, Y: top},
		{X: x, Y: top + 25},
		{X: x + 40, Y: top + 12.5},
	}
}

// Area returns the trigger rectangle. It starts 10 units left of the
// pole's right edge.
func (f Flag) Area() core.Box {
	return core.Box{X: f.Base.X + poleWidth - 10, Y: f.Base.Y - poleHeight, W: goalWidth, H: poleHeight}
}

// Reached reports whether the player center is inside the trigger.
func (f Flag) Reached(p core.Vec) bool {
	return f.Area().Contains(p)
}
