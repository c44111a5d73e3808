package anim

import (
	"github.com/coreman2200/arcastrip/internal/palette"
	"github.com/coreman2200/arcastrip/internal/render"
)

// PixelSpacing is the index distance between neighbouring pixels.
const PixelSpacing = 3

// Cyclic fills the frame from the active palette, producing a gradient that
// travels along the strip as the index advances.
type Cyclic struct{}

// Tick renders one frame at the current index and then advances it.
func (Cyclic) Tick(dst render.Frame, s *State) {
	Fill(dst, s.Palette(), s.Index, s.Blend)
	s.Advance()
}

// Fill writes pixel i = ColorFromPalette(p, start + i*PixelSpacing) at full brightness.
func Fill(dst render.Frame, p *palette.Palette, start uint8, blend palette.Blend) {
	idx := start
	for i := range dst {
		dst[i] = palette.ColorFromPalette(p, idx, 255, blend)
		idx += PixelSpacing
	}
}
