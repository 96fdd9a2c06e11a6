// Package core provides the value types shared by the simulation and the
// presentation layer. It has no external dependencies so that game logic
// stays pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ViewportConfig maps design space (BaseWidth x BaseHeight) onto a display of
// Width x Height units. The simulation never reads it; only layout and
// rendering transforms do.
type ViewportConfig struct {
	Width      float64
	Height     float64
	BaseWidth  float64
	BaseHeight float64
}

// DesignViewport returns the identity viewport for the 1280x720 design space.
func DesignViewport() ViewportConfig {
	return ViewportConfig{Width: 1280, Height: 720, BaseWidth: 1280, BaseHeight: 720}
}

// ScaleX converts a horizontal design length to display units.
func (v ViewportConfig) ScaleX(x float64) float64 {
	return x * v.Width / v.BaseWidth
}

// ScaleY converts a vertical design length to display units.
func (v ViewportConfig) ScaleY(y float64) float64 {
	return y * v.Height / v.BaseHeight
}

// VerticalRatio is the display-to-design height ratio.
func (v ViewportConfig) VerticalRatio() float64 {
	return v.Height / v.BaseHeight
}

// ToDisplay converts a design point to integer display coordinates.
func (v ViewportConfig) ToDisplay(p Vec) (int, int) {
	return int(math.Floor(v.ScaleX(p.X))), int(math.Floor(v.ScaleY(p.Y)))
}

// ToDesign converts a display coordinate (cell or pixel) to the design point
// at the center of that cell.
func (v ViewportConfig) ToDesign(x, y int) Vec {
	return Vec{
		X: (float64(x) + 0.5) * v.BaseWidth / v.Width,
		Y: (float64(y) + 0.5) * v.BaseHeight / v.Height,
	}
}

// BoxToRect converts a design box to the display cells it covers.
// Non-empty boxes always cover at least one cell.
func (v ViewportConfig) BoxToRect(b Box) Rect {
	x0, y0 := v.ToDisplay(Vec{b.X, b.Y})
	x1 := int(math.Ceil(v.ScaleX(b.Right())))
	y1 := int(math.Ceil(v.ScaleY(b.Bottom())))
	return NewRect(x0, y0, Max(1, x1-x0), Max(1, y1-y0))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
