package palette

import (
	"fmt"

	"github.com/coreman2200/arcastrip/internal/render"
)

// Size is the number of anchor colors in every palette.
const Size = 16

// Palette is an ordered table of 16 anchor colors. Index space 0..255 maps
// onto it in 16 buckets of 16.
type Palette [Size]render.RGB

// FromHex builds a palette from 24-bit 0xRRGGBB values.
func FromHex(v [Size]uint32) Palette {
	var p Palette
	for i := range v {
		p[i] = render.Hex(v[i])
	}
	return p
}

// Blend selects how an 8-bit index picks among palette entries.
type Blend uint8

const (
	NoBlend Blend = iota
	LinearBlend
)

func (b Blend) String() string {
	switch b {
	case NoBlend:
		return "none"
	case LinearBlend:
		return "linear"
	default:
		return fmt.Sprintf("blend(%d)", uint8(b))
	}
}

// ParseBlend accepts "none"/"noblend" and "linear"/"linearblend".
func ParseBlend(s string) (Blend, error) {
	switch s {
	case "none", "noblend", "step":
		return NoBlend, nil
	case "linear", "linearblend", "":
		return LinearBlend, nil
	}
	return NoBlend, fmt.Errorf("unknown blend mode %q", s)
}
