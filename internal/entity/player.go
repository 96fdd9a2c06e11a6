// Package entity contains the objects living in a stage: the player ball,
// placed animal blocks and the goal flag. Entities keep only handles into
// the physics world; the session owns the world and passes it in.
package entity

import (
	"fmt"
	"math"

	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/physics"
)

// PlayerParams configures the player ball.
type PlayerParams struct {
	Start         core.Vec
	Radius        float64
	Mass          float64
	Elasticity    float64
	Friction      float64
	CustomGravity float64 // Extra downward force, body-local
	JumpImpulse   float64 // Upward impulse magnitude
	GroundNormal  float64 // Minimum |normal.y| for a contact to count as ground
	ForceScale    float64 // Multiplier for CustomGravity and JumpImpulse; 0 means 1
}

// Player is the ball the user steers.
type Player struct {
	Handle   physics.BodyHandle
	Start    core.Vec
	Grounded bool

	params PlayerParams
}

// NewPlayer inserts the player body at its start position.
func NewPlayer(w *physics.World, p PlayerParams) (*Player, error) {
	if p.ForceScale == 0 {
		p.ForceScale = 1
	}
	h, err := w.AddBody(physics.BodySpec{
		Type:     physics.BodyDynamic,
		Position: p.Start,
		Mass:     p.Mass,
		Moment:   math.Inf(1),
		Shapes: []physics.ShapeSpec{{
			Radius:     p.Radius,
			Elasticity: p.Elasticity,
			Friction:   p.Friction,
			Filter:     physics.PlayerFilter,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("entity: player: %w", err)
	}
	return &Player{Handle: h, Start: p.Start, params: p}, nil
}

// Radius returns the ball radius.
func (p *Player) Radius() float64 {
	return p.params.Radius
}

// Update applies the custom gravity for the next step and recomputes
// Grounded from the contacts of the previous one.
func (p *Player) Update(w *physics.World) {
	w.ApplyLocalForce(p.Handle, core.V(0, p.params.CustomGravity*p.params.ForceScale), core.Vec{})

	p.Grounded = false
	w.ForEachContact(p.Handle, func(n core.Vec) {
		if math.Abs(n.Y) > p.params.GroundNormal {
			p.Grounded = true
		}
	})
}

// SetHorizontalVelocity replaces vx and keeps vy.
func (p *Player) SetHorizontalVelocity(w *physics.World, vx float64) {
	v := w.Velocity(p.Handle)
	w.SetVelocity(p.Handle, core.V(vx, v.Y))
}

// Jump fires only when grounded. Vertical velocity is zeroed first so the
// jump height does not depend on the current fall speed.
func (p *Player) Jump(w *physics.World) bool {
	if !p.Grounded {
		return false
	}
	v := w.Velocity(p.Handle)
	w.SetVelocity(p.Handle, core.V(v.X, 0))
	w.ApplyLocalImpulse(p.Handle, core.V(0, -p.params.JumpImpulse*p.params.ForceScale), core.Vec{})
	p.Grounded = false
	return true
}

// Respawn puts the ball back at its start at rest.
func (p *Player) Respawn(w *physics.World) {
	w.SetPosition(p.Handle, p.Start)
	w.SetVelocity(p.Handle, core.Vec{})
	w.SetAngularVelocity(p.Handle, 0)
	w.SetAngle(p.Handle, 0)
	p.Grounded = false
}

// Position returns the ball center.
func (p *Player) Position(w *physics.World) core.Vec {
	return w.Position(p.Handle)
}

// IsDead reports whether the ball has fallen past threshold.
func (p *Player) IsDead(w *physics.World, threshold float64) bool {
	return w.Position(p.Handle).Y > threshold
}
