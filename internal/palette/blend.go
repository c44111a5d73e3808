package palette

import "github.com/coreman2200/arcastrip/internal/render"

// ColorFromPalette maps an 8-bit index onto p and scales the result by brightness.
//
// NoBlend picks entry index>>4. LinearBlend interpolates between entry index>>4 and
// the next one (wrapping 15 -> 0) with weight (index&0xF)/16, rounding half up.
// Brightness scaling truncates, see render.Scale8.
func ColorFromPalette(p *Palette, index, brightness uint8, blend Blend) render.RGB {
	bucket := index >> 4
	lo := p[bucket]

	c := lo
	if blend == LinearBlend {
		if frac := uint16(index & 0x0F); frac != 0 {
			hi := p[(bucket+1)%Size]
			c = render.RGB{
				R: lerp16(lo.R, hi.R, frac),
				G: lerp16(lo.G, hi.G, frac),
				B: lerp16(lo.B, hi.B, frac),
			}
		}
	}
	return c.Scale(brightness)
}

// lerp16 returns round(a*(16-f)/16 + b*f/16) for f in 0..15.
func lerp16(a, b uint8, f uint16) uint8 {
	return uint8((uint16(a)*(16-f) + uint16(b)*f + 8) >> 4)
}
