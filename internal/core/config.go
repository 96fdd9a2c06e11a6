package core

import "time"

// RuntimeConfig contains the platform parameters a session starts with.
type RuntimeConfig struct {
	Viewport ViewportConfig // Display mapping for layout and rendering
	TickRate int            // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Viewport: DesignViewport(),
		TickRate: 60,
	}
}

// Clock is the monotonic elapsed-time source of a session.
type Clock interface {
	Now() time.Duration
}

// TickClock derives time from a tick counter, so simulations driven by it are
// fully deterministic. The owner calls Advance once per simulated frame.
type TickClock struct {
	rate  int
	ticks int64
}

// NewTickClock creates a clock for the given tick rate.
func NewTickClock(rate int) *TickClock {
	if rate <= 0 {
		rate = 60
	}
	return &TickClock{rate: rate}
}

// Advance moves the clock forward by one tick.
func (c *TickClock) Advance() {
	c.ticks++
}

// Ticks returns the number of ticks advanced so far.
func (c *TickClock) Ticks() int64 {
	return c.ticks
}

// Now returns the elapsed time represented by the tick counter.
func (c *TickClock) Now() time.Duration {
	return time.Duration(c.ticks) * time.Second / time.Duration(c.rate)
}

// WallClock measures real elapsed time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the time since the clock started.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}
