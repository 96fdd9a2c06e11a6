// Package render rasterizes session snapshots into a core.Screen. Design
// units are mapped onto the screen's cells, so the same frame fills any
// terminal size.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/session"
)

// Glyphs used by the stage renderer.
const (
	GlyphTerrain = '▓'
	GlyphBody    = '█'
	GlyphHead    = '◆'
	GlyphPlayer  = '●'
	GlyphPole    = '│'
	GlyphCloth   = '▶'
	GlyphHazard  = '~'
	GlyphPreview = '▒'
	GlyphIcon    = '▪'
)

// fadeGlyphs shows a dying block dissolving.
var fadeGlyphs = []rune{'▓', '▒', '░'}

// Viewport maps the frame's design space onto the screen.
func Viewport(s *core.Screen, f session.Frame) core.ViewportConfig {
	return core.ViewportConfig{
		Width:      float64(s.Width()),
		Height:     float64(s.Height()),
		BaseWidth:  f.Width,
		BaseHeight: f.Height,
	}
}

// Frame draws a complete stage frame.
func Frame(s *core.Screen, f session.Frame) {
	s.Clear()
	if f.Width <= 0 || f.Height <= 0 || s.Width() == 0 || s.Height() == 0 {
		return
	}
	vp := Viewport(s, f)

	drawDropZone(s, vp, f)
	if f.HazardFloor {
		_, y := vp.ToDisplay(core.V(0, f.HazardY))
		s.DrawHLine(0, y, s.Width(), GlyphHazard, core.ColorRed)
	}
	for _, t := range f.Terrain {
		s.DrawRect(vp.BoxToRect(t), GlyphTerrain, core.ColorBrown)
	}
	drawGoal(s, vp, f)
	for _, b := range f.Blocks {
		drawBlock(s, vp, b)
	}
	drawPlayer(s, vp, f.Player, f.PlayerRadius)
	drawPanel(s, vp, f)
	if f.Drag != nil {
		drawDrag(s, vp, f.Drag)
	}
	drawHUD(s, vp, f)

	if f.Paused {
		drawPaused(s)
	}
}

func drawDropZone(s *core.Screen, vp core.ViewportConfig, f session.Frame) {
	c := core.ColorDarkGray
	if f.Drag != nil {
		c = core.ColorRed
		if f.Drag.Valid {
			c = core.ColorGreen
		}
	}
	r := vp.BoxToRect(f.DropZone)
	if r.W < 2 || r.H < 2 {
		s.DrawRect(r, '·', c)
		return
	}
	s.DrawBox(r, c)
	if f.Drag == nil && r.W > 12 {
		s.DrawTextColored(r.X+2, r.Y, " drop here ", c)
	}
}

func drawGoal(s *core.Screen, vp core.ViewportConfig, f session.Frame) {
	pole := vp.BoxToRect(f.GoalPole)
	for y := pole.Y; y < pole.Bottom(); y++ {
		s.SetCell(pole.X, y, GlyphPole, core.ColorWhite)
	}
	x, y := vp.ToDisplay(f.GoalCloth[1].Add(f.GoalCloth[2]).Scale(0.5))
	if x <= pole.X {
		x = pole.X + 1
	}
	s.SetCell(x, y, GlyphCloth, core.ColorBrightRed)
}

func drawBlock(s *core.Screen, vp core.ViewportConfig, b session.BlockView) {
	color := core.ColorGreen
	if b.Carnivore {
		color = core.ColorOrange
	}
	glyph := GlyphBody
	if b.Dying > 0 {
		color = core.ColorDarkGray
		i := int(b.Dying * float64(len(fadeGlyphs)))
		if i >= len(fadeGlyphs) {
			i = len(fadeGlyphs) - 1
		}
		glyph = fadeGlyphs[i]
	}

	for _, cell := range b.Cells {
		s.DrawRect(vp.BoxToRect(bounds(cell)), glyph, color)
	}
	if b.Dying > 0 {
		return
	}
	for _, h := range b.Heads {
		x, y := vp.ToDisplay(h)
		s.SetCell(x, y, GlyphHead, core.ColorBrightRed)
	}
}

// bounds returns the axis-aligned box around a polygon, shrunk slightly so
// adjacent cells do not bleed into the next screen cell.
func bounds(verts []core.Vec) core.Box {
	if len(verts) == 0 {
		return core.Box{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	const inset = 0.5
	return core.Box{X: minX + inset, Y: minY + inset, W: maxX - minX - 2*inset, H: maxY - minY - 2*inset}
}

func drawPlayer(s *core.Screen, vp core.ViewportConfig, center core.Vec, radius float64) {
	r := vp.BoxToRect(core.BoxFromCenter(center.X, center.Y, 2*radius, 2*radius))
	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			p := vp.ToDesign(x, y)
			if p.Sub(center).Len() <= radius {
				s.SetCell(x, y, GlyphPlayer, core.ColorBrightYellow)
				drawn = true
			}
		}
	}
	if !drawn {
		x, y := vp.ToDisplay(center)
		s.SetCell(x, y, GlyphPlayer, core.ColorBrightYellow)
	}
}

func drawPanel(s *core.Screen, vp core.ViewportConfig, f session.Frame) {
	_, top := vp.ToDisplay(core.V(0, f.Panel.Y))
	s.DrawHLine(0, top, s.Width(), '─', core.ColorGray)

	for _, slot := range f.Palette {
		color := core.ColorGreen
		if slot.Carnivore {
			color = core.ColorOrange
		}
		if slot.Remaining <= 0 {
			color = core.ColorDarkGray
		}
		r := vp.BoxToRect(slot.Icon)
		s.DrawRect(r, GlyphIcon, color)

		name := slot.Name
		if slot.Remaining <= 0 {
			name = "(" + name + ")"
		}
		cx := r.X + r.W/2
		s.DrawTextColored(cx-len([]rune(name))/2, r.Bottom(), name, color)
	}
}

func drawDrag(s *core.Screen, vp core.ViewportConfig, d *session.DragView) {
	color := core.ColorRed
	if d.Valid {
		color = core.ColorBrightGreen
	}
	for _, c := range d.Cells {
		s.DrawRect(vp.BoxToRect(c), GlyphPreview, color)
	}
	for _, h := range d.Heads {
		x, y := vp.ToDisplay(h.Center())
		s.SetCell(x, y, GlyphHead, core.ColorBrightRed)
	}
}

func drawHUD(s *core.Screen, vp core.ViewportConfig, f session.Frame) {
	r := vp.BoxToRect(f.Restart)
	label := "Restart"
	if r.W >= len(label)+2 && r.H >= 3 {
		s.DrawBox(r, core.ColorCyan)
		s.DrawTextColored(r.X+(r.W-len(label))/2, r.Y+r.H/2, label, core.ColorCyan)
	} else {
		s.DrawTextColored(r.X, r.Y, "[R]", core.ColorCyan)
	}

	stats := fmt.Sprintf("Stage %d %s  Blocks %d  Eaten %d  %s",
		f.HUD.Stage, f.HUD.StageName, f.HUD.BlocksUsed, f.HUD.Eaten, f.HUD.Time)
	x := s.Width() - len([]rune(stats)) - 1
	if x < r.Right()+1 {
		x = r.Right() + 1
	}
	s.DrawTextColored(x, 0, stats, core.ColorWhite)
}

func drawPaused(s *core.Screen) {
	lines := []string{
		"PAUSED",
		"",
		"A/D or arrows  move     Space  jump",
		"drag an animal into the box, R rotates",
		"F5 restart   Tab stage select   Q quit",
		"",
		"press H to resume",
	}
	w := 0
	for _, l := range lines {
		w = core.Max(w, len(l))
	}
	box := core.NewRect((s.Width()-w-4)/2, (s.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorYellow)
	for i, l := range lines {
		s.DrawTextColored(box.X+2+(w-len(l))/2, box.Y+1+i, l, core.ColorYellow)
	}
}
