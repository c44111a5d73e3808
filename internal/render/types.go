package render

import "image/color"

// RGB is one 8-bit-per-channel pixel.
type RGB struct{ R, G, B uint8 }

// Frame is the full pixel buffer for one tick, always N pixels long.
type Frame []RGB

func NewFrame(n int) Frame { return make(Frame, n) }

// RGBA satisfies color.Color so frames can be drawn as images.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Hex builds an RGB from a 24-bit 0xRRGGBB value.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16 & 0xff), G: uint8(v >> 8 & 0xff), B: uint8(v & 0xff)}
}

func (f Frame) Fill(c RGB) {
	for i := range f {
		f[i] = c
	}
}

// Bytes packs the frame as R,G,B triples into dst (reallocated if short) and returns it.
func (f Frame) Bytes(dst []byte) []byte {
	if cap(dst) < len(f)*3 {
		dst = make([]byte, len(f)*3)
	}
	dst = dst[:len(f)*3]
	for i, c := range f {
		dst[i*3+0] = c.R
		dst[i*3+1] = c.G
		dst[i*3+2] = c.B
	}
	return dst
}
