package session

import (
	"github.com/vovakirdan/animal-bridge/internal/block"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/config"
	"github.com/vovakirdan/animal-bridge/internal/core"
)

// PaletteSlot is one animal icon in the bottom panel.
type PaletteSlot struct {
	AnimalID  string
	Name      string
	Carnivore bool
	Icon      core.Box // Clickable icon rectangle
	Remaining int      // 1 until placed, then 0
}

// layout holds the fixed screen regions of a stage, in design units.
type layout struct {
	dropZone core.Box
	restart  core.Box
	panel    core.Box
	palette  []PaletteSlot
}

func newLayout(animals []catalog.Animal, l config.LayoutConfig, width, height float64) layout {
	out := layout{
		dropZone: core.Box{X: width/2 - l.DropZoneWidth/2, Y: l.DropZoneTop, W: l.DropZoneWidth, H: l.DropZoneHeight},
		restart:  core.Box{X: 20, Y: 20, W: 150, H: 50},
		panel:    core.Box{X: 0, Y: height - l.PanelHeight, W: width, H: l.PanelHeight},
	}

	for i, a := range animals {
		col, row := i%l.PaletteColumns, i/l.PaletteColumns
		cx := l.PaletteStartX + float64(col)*l.PaletteCellWidth
		cy := height - l.PanelHeight + 30 + float64(row)*l.PaletteRowHeight
		w, h := iconSize(a, l.IconSize)
		out.palette = append(out.palette, PaletteSlot{
			AnimalID:  a.ID,
			Name:      a.DisplayName(),
			Carnivore: a.Carnivore,
			Icon:      core.BoxFromCenter(cx, cy, w, h),
			Remaining: 1,
		})
	}
	return out
}

// iconSize fits the animal's grid into a max x max square, keeping its aspect.
func iconSize(a catalog.Animal, max float64) (w, h float64) {
	fw, fh := block.Footprint(a, 1, 0)
	if fw <= 0 || fh <= 0 {
		return max, max
	}
	if fw >= fh {
		return max, max * fh / fw
	}
	return max * fw / fh, max
}

// slotAt returns the palette index under p, or -1.
func (l layout) slotAt(p core.Vec) int {
	for i, s := range l.palette {
		if s.Icon.Contains(p) {
			return i
		}
	}
	return -1
}
