package core

import "math"

// Vec is a 2D vector in design units. Y grows downward, matching screen space.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the Euclidean length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Box is an axis-aligned rectangle in design units, stored by its top-left
// corner. Terrain specs use centers, see BoxFromCenter.
type Box struct {
	X, Y, W, H float64
}

// BoxFromCenter builds a box from its center and size.
func BoxFromCenter(cx, cy, w, h float64) Box {
	return Box{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point.
func (b Box) Center() Vec {
	return Vec{b.X + b.W/2, b.Y + b.H/2}
}

// Contains reports whether p lies inside the box. Left and top edges are
// inclusive, right and bottom exclusive.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}
