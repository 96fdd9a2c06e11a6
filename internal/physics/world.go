// Package physics adapts the Chipmunk2D engine (github.com/jakecoffman/cp)
// to the game's needs: handle-based bodies built from convex cell shapes,
// collision categories, fixed sub-stepping and surface distance queries.
//
// Coordinates are design units with y growing downward, so gravity is a
// positive y value.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/animal-bridge/internal/core"
)

var (
	// ErrNoShapes is returned when a body spec has no shapes.
	ErrNoShapes = errors.New("physics: body has no shapes")
	// ErrInvalidShape is returned for degenerate shape specs.
	ErrInvalidShape = errors.New("physics: invalid shape")
	// ErrNoMass is returned for a dynamic body without positive mass.
	ErrNoMass = errors.New("physics: dynamic body has no mass")
	// ErrClosed is returned when the world has been closed.
	ErrClosed = errors.New("physics: world closed")
)

// BodyType selects how the engine simulates a body.
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyStatic
)

// BodyHandle identifies a body inside one World. The zero value is never valid.
type BodyHandle uint64

// ShapeHandle identifies one shape of a body.
type ShapeHandle struct {
	Body  BodyHandle
	Index int
}

// ShapeSpec describes one collision shape in body-local coordinates.
// A shape with Verts is a convex polygon; otherwise it is a circle of
// Radius centered at Offset.
type ShapeSpec struct {
	Verts      []core.Vec
	Radius     float64
	Offset     core.Vec
	Elasticity float64
	Friction   float64
	Mass       float64 // Contributes to body mass when BodySpec.Mass is zero
	Filter     Filter
}

// BodySpec describes a body to insert.
// When Mass is positive, Mass and Moment are used as given and shape masses
// are ignored; pass math.Inf(1) as Moment for a body that never rotates.
// Otherwise mass and moment accumulate from the shapes.
type BodySpec struct {
	Type     BodyType
	Position core.Vec
	Angle    float64
	Mass     float64
	Moment   float64
	Shapes   []ShapeSpec
}

type bodyEntry struct {
	body   *cp.Body
	shapes []*cp.Shape
}

// World owns a Chipmunk space and every body inserted through it.
// It is not safe for concurrent use.
type World struct {
	space  *cp.Space
	bodies map[BodyHandle]*bodyEntry
	nextID BodyHandle
}

// NewWorld creates an empty world with downward gravity gravityY.
func NewWorld(gravityY float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})
	return &World{
		space:  space,
		bodies: make(map[BodyHandle]*bodyEntry),
	}
}

// AddBody inserts a body and all of its shapes.
func (w *World) AddBody(spec BodySpec) (BodyHandle, error) {
	if w.space == nil {
		return 0, ErrClosed
	}
	if len(spec.Shapes) == 0 {
		return 0, ErrNoShapes
	}
	for i, s := range spec.Shapes {
		if err := validateShape(s); err != nil {
			return 0, fmt.Errorf("shape %d: %w", i, err)
		}
	}

	var body *cp.Body
	switch spec.Type {
	case BodyStatic:
		body = cp.NewStaticBody()
	default:
		if spec.Mass > 0 {
			body = cp.NewBody(spec.Mass, spec.Moment)
		} else {
			total := 0.0
			for _, s := range spec.Shapes {
				total += s.Mass
			}
			if total <= 0 {
				return 0, ErrNoMass
			}
			body = cp.NewBody(0, 0)
		}
	}
	body.SetPosition(toCP(spec.Position))
	body.SetAngle(spec.Angle)
	w.space.AddBody(body)

	entry := &bodyEntry{body: body, shapes: make([]*cp.Shape, 0, len(spec.Shapes))}
	for _, s := range spec.Shapes {
		shape := newShape(body, s)
		w.space.AddShape(shape)
		if spec.Type == BodyDynamic && spec.Mass <= 0 && s.Mass > 0 {
			shape.SetMass(s.Mass)
		}
		entry.shapes = append(entry.shapes, shape)
	}

	w.nextID++
	w.bodies[w.nextID] = entry
	return w.nextID, nil
}

func validateShape(s ShapeSpec) error {
	if len(s.Verts) > 0 {
		if len(s.Verts) < 3 {
			return fmt.Errorf("%w: polygon needs 3 vertices, got %d", ErrInvalidShape, len(s.Verts))
		}
		return nil
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%w: circle radius %g", ErrInvalidShape, s.Radius)
	}
	return nil
}

func newShape(body *cp.Body, s ShapeSpec) *cp.Shape {
	var shape *cp.Shape
	if len(s.Verts) > 0 {
		verts := make([]cp.Vector, len(s.Verts))
		for i, v := range s.Verts {
			verts[i] = toCP(v)
		}
		shape = cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	} else {
		shape = cp.NewCircle(body, s.Radius, toCP(s.Offset))
	}
	shape.SetElasticity(s.Elasticity)
	shape.SetFriction(s.Friction)
	shape.SetFilter(s.Filter.toCP())
	return shape
}

// RemoveBody removes every shape of the body, then the body itself.
// Unknown handles are ignored and report false.
func (w *World) RemoveBody(h BodyHandle) bool {
	entry, ok := w.bodies[h]
	if !ok || w.space == nil {
		return false
	}
	for _, shape := range entry.shapes {
		w.space.RemoveShape(shape)
	}
	w.space.RemoveBody(entry.body)
	delete(w.bodies, h)
	return true
}

// HasBody reports whether the handle refers to a live body.
func (w *World) HasBody(h BodyHandle) bool {
	_, ok := w.bodies[h]
	return ok && w.space != nil
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// StepFrame advances one rendered frame at tickRate as substeps equal steps.
func (w *World) StepFrame(tickRate, substeps int) {
	if tickRate <= 0 || substeps <= 0 {
		return
	}
	dt := 1.0 / float64(tickRate*substeps)
	for i := 0; i < substeps; i++ {
		w.Step(dt)
	}
}

// NearestDistance returns the smallest surface distance from point to any
// shape of the body. The distance is negative when point is inside a shape.
func (w *World) NearestDistance(point core.Vec, h BodyHandle) (float64, bool) {
	entry, ok := w.bodies[h]
	if !ok || len(entry.shapes) == 0 {
		return 0, false
	}
	best := math.Inf(1)
	p := toCP(point)
	for _, shape := range entry.shapes {
		if d := shape.PointQuery(p).Distance; d < best {
			best = d
		}
	}
	return best, true
}

// ShapeDistance returns the surface distance from point to a single shape.
func (w *World) ShapeDistance(point core.Vec, sh ShapeHandle) (float64, bool) {
	entry, ok := w.bodies[sh.Body]
	if !ok || sh.Index < 0 || sh.Index >= len(entry.shapes) {
		return 0, false
	}
	return entry.shapes[sh.Index].PointQuery(toCP(point)).Distance, true
}

// ShapeCount returns how many shapes a body has.
func (w *World) ShapeCount(h BodyHandle) int {
	entry, ok := w.bodies[h]
	if !ok {
		return 0
	}
	return len(entry.shapes)
}

// ForEachContact calls fn with the normal of every contact the body has
// after the last step.
func (w *World) ForEachContact(h BodyHandle, fn func(normal core.Vec)) {
	entry, ok := w.bodies[h]
	if !ok || w.space == nil {
		return
	}
	entry.body.EachArbiter(func(arb *cp.Arbiter) {
		fn(fromCP(arb.Normal()))
	})
}

// Close drops every body and the space. All handles become invalid.
func (w *World) Close() {
	if w.space == nil {
		return
	}
	for h := range w.bodies {
		w.RemoveBody(h)
	}
	w.space = nil
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool {
	return w.space == nil
}

func toCP(v core.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) core.Vec {
	return core.Vec{X: v.X, Y: v.Y}
}
