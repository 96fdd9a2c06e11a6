package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetCellKeepsColor(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, '#', ColorGreen)
	cell := s.GetCell(5, 5)
	if cell.Rune != '#' || cell.Color != ColorGreen {
		t.Errorf("GetCell(5, 5) = %+v, expected '#' in green", cell)
	}

	// Out of bounds should be silent
	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(100, 0, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextColoredClips(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(18, 0, "Hello", ColorYellow)

	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
	if s.GetCell(18, 0).Color != ColorYellow {
		t.Errorf("DrawTextColored color = %v, expected %v", s.GetCell(18, 0).Color, ColorYellow)
	}
}

func TestScreenDrawTextColoredCountsRunes(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawTextColored(1, 0, "▓▒░x", ColorDarkGray)

	if s.Row(0) != " ▓▒░x " {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), " ▓▒░x ")
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#', ColorGray)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	s.Clear()
	s.DrawBox(NewRect(1, 1, 5, 4), ColorWhite)
	if s.Get(1, 1) != '┌' || s.Get(5, 4) != '┘' {
		t.Errorf("DrawBox corners = %q %q", s.Get(1, 1), s.Get(5, 4))
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(1, 1, 'X', ColorRed)
	s.SetCell(4, 4, 'Y', ColorRed)

	s.Resize(3, 3)
	if s.Get(1, 1) != 'X' {
		t.Error("Resize should keep content inside the new bounds")
	}
	if s.Width() != 3 || s.Height() != 3 {
		t.Errorf("Resize dims = %dx%d, expected 3x3", s.Width(), s.Height())
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawTextColored(0, 0, "abc", ColorWhite)
	s.DrawTextColored(0, 1, "de", ColorGreen)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() rows = %d, expected 2", len(lines))
	}
	if lines[0] != "abc" || lines[1] != "de " {
		t.Errorf("String() = %q", s.String())
	}
}
