package core

import (
	"math"
	"testing"
	"time"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestBoxFromCenter(t *testing.T) {
	b := BoxFromCenter(250, 600, 504, 108)

	if b.X != -2 || b.Y != 546 {
		t.Errorf("BoxFromCenter top-left = (%v, %v), expected (-2, 546)", b.X, b.Y)
	}
	if b.Right() != 502 || b.Bottom() != 654 {
		t.Errorf("BoxFromCenter edges = (%v, %v), expected (502, 654)", b.Right(), b.Bottom())
	}
	if c := b.Center(); c != V(250, 600) {
		t.Errorf("Center() = %v, expected (250, 600)", c)
	}
	if !b.Contains(V(0, 546)) || b.Contains(V(502, 600)) {
		t.Error("Contains should include the top-left edge and exclude the right edge")
	}
}

func TestVecRotate(t *testing.T) {
	v := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("Rotate(pi/2) = %v, expected (0, 1)", v)
	}
	if l := V(3, 4).Len(); l != 5 {
		t.Errorf("Len() = %v, expected 5", l)
	}
}

func TestViewportTransforms(t *testing.T) {
	vp := ViewportConfig{Width: 128, Height: 36, BaseWidth: 1280, BaseHeight: 720}

	x, y := vp.ToDisplay(V(640, 360))
	if x != 64 || y != 18 {
		t.Errorf("ToDisplay(640, 360) = (%d, %d), expected (64, 18)", x, y)
	}

	p := vp.ToDesign(64, 18)
	if p.X != 645 || p.Y != 370 {
		t.Errorf("ToDesign(64, 18) = %v, expected (645, 370)", p)
	}

	r := vp.BoxToRect(Box{X: 0, Y: 0, W: 5, H: 5})
	if r.W != 1 || r.H != 1 {
		t.Errorf("BoxToRect of a sub-cell box = %+v, expected a 1x1 rect", r)
	}

	if vp.VerticalRatio() != 0.05 {
		t.Errorf("VerticalRatio() = %v, expected 0.05", vp.VerticalRatio())
	}
}

func TestClampMinMax(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max returned the wrong operand")
	}
}

func TestTickClock(t *testing.T) {
	c := NewTickClock(60)
	for i := 0; i < 30; i++ {
		c.Advance()
	}
	if c.Now() != 500*time.Millisecond {
		t.Errorf("Now() after 30 ticks = %v, expected 500ms", c.Now())
	}
	if c.Ticks() != 30 {
		t.Errorf("Ticks() = %d, expected 30", c.Ticks())
	}
}
