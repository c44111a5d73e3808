package render

// Well known strip color corrections (per-channel full-scale values).
const (
	UncorrectedColor uint32 = 0xFFFFFF
	TypicalLEDStrip  uint32 = 0xFFB0F0
	TypicalSMD5050   uint32 = 0xFFB0F0
	Typical8mmPixel  uint32 = 0xFFE08C
)

// Scale8 returns v*s/255, truncated. 255 is identity and 0 is black.
func Scale8(v, s uint8) uint8 {
	return uint8(uint16(v) * uint16(s) / 255)
}

// Scale applies a brightness to every channel of c.
func (c RGB) Scale(brightness uint8) RGB {
	if brightness == 255 {
		return c
	}
	return RGB{R: Scale8(c.R, brightness), G: Scale8(c.G, brightness), B: Scale8(c.B, brightness)}
}

// FadeToBlackBy dims c by amount/256 of its remaining value, flooring at 0.
func (c RGB) FadeToBlackBy(amount uint8) RGB {
	keep := uint16(256 - uint16(amount))
	return RGB{
		R: uint8(uint16(c.R) * keep >> 8),
		G: uint8(uint16(c.G) * keep >> 8),
		B: uint8(uint16(c.B) * keep >> 8),
	}
}

// Output writes src into dst with global brightness and color correction applied.
// dst and src must have the same length.
func Output(dst, src Frame, brightness uint8, correction uint32) {
	corr := Hex(correction)
	for i, c := range src {
		c = c.Scale(brightness)
		dst[i] = RGB{
			R: Scale8(c.R, corr.R),
			G: Scale8(c.G, corr.G),
			B: Scale8(c.B, corr.B),
		}
	}
}
