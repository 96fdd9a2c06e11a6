package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/animal-bridge/internal/core"
)

// Body state accessors. Unknown handles read as zero and writes are ignored.

func (w *World) body(h BodyHandle) *cp.Body {
	entry, ok := w.bodies[h]
	if !ok {
		return nil
	}
	return entry.body
}

// Position returns the body's center of gravity in world space.
func (w *World) Position(h BodyHandle) core.Vec {
	if b := w.body(h); b != nil {
		return fromCP(b.Position())
	}
	return core.Vec{}
}

// SetPosition teleports the body.
func (w *World) SetPosition(h BodyHandle, p core.Vec) {
	if b := w.body(h); b != nil {
		b.SetPosition(toCP(p))
	}
}

// Angle returns the body rotation in radians.
func (w *World) Angle(h BodyHandle) float64 {
	if b := w.body(h); b != nil {
		return b.Angle()
	}
	return 0
}

// SetAngle sets the body rotation in radians.
func (w *World) SetAngle(h BodyHandle, a float64) {
	if b := w.body(h); b != nil {
		b.SetAngle(a)
	}
}

// Velocity returns the linear velocity.
func (w *World) Velocity(h BodyHandle) core.Vec {
	if b := w.body(h); b != nil {
		return fromCP(b.Velocity())
	}
	return core.Vec{}
}

// SetVelocity sets the linear velocity.
func (w *World) SetVelocity(h BodyHandle, v core.Vec) {
	if b := w.body(h); b != nil {
		b.SetVelocity(v.X, v.Y)
	}
}

// SetAngularVelocity sets the angular velocity in radians per second.
func (w *World) SetAngularVelocity(h BodyHandle, av float64) {
	if b := w.body(h); b != nil {
		b.SetAngularVelocity(av)
	}
}

// ApplyLocalForce applies force at a point, both in the body's local frame.
// Forces act on the next step only.
func (w *World) ApplyLocalForce(h BodyHandle, force, at core.Vec) {
	if b := w.body(h); b != nil {
		b.ApplyForceAtLocalPoint(toCP(force), toCP(at))
	}
}

// ApplyLocalImpulse applies an instantaneous impulse in the body's local frame.
func (w *World) ApplyLocalImpulse(h BodyHandle, impulse, at core.Vec) {
	if b := w.body(h); b != nil {
		b.ApplyImpulseAtLocalPoint(toCP(impulse), toCP(at))
	}
}

// LocalToWorld converts a body-local point to world space.
func (w *World) LocalToWorld(h BodyHandle, p core.Vec) core.Vec {
	if b := w.body(h); b != nil {
		return fromCP(b.LocalToWorld(toCP(p)))
	}
	return p
}
