package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/coreman2200/arcastrip/internal/render"
)

var (
	blueRGB   = render.Hex(0x0000FF)
	greyRGB   = render.Hex(0x808080)
	orangeRGB = render.Hex(0xFFA500)
)

func expectedLinear(p *Palette, index, brightness uint8) render.RGB {
	lo := p[index>>4]
	hi := p[(int(index>>4)+1)%Size]
	w := float64(index&0x0F) / 16
	ch := func(a, b uint8) uint8 {
		v := uint8(math.Round(float64(a)*(1-w) + float64(b)*w))
		return uint8(uint16(v) * uint16(brightness) / 255)
	}
	return render.RGB{R: ch(lo.R, hi.R), G: ch(lo.G, hi.G), B: ch(lo.B, hi.B)}
}

func TestTripleStrangeScenario(t *testing.T) {
	s := NewStore()
	p, ok := s.Get(TripleStrange)
	assert.True(t, ok)

	assert.Equal(t, blueRGB, ColorFromPalette(p, 0, 255, LinearBlend))
	assert.Equal(t, greyRGB, ColorFromPalette(p, 16, 255, LinearBlend))
	assert.Equal(t, orangeRGB, ColorFromPalette(p, 32, 255, NoBlend))

	// halfway between Blue and Gray
	mid := ColorFromPalette(p, 8, 255, LinearBlend)
	assert.Equal(t, render.RGB{R: 64, G: 64, B: 192}, mid)

	// NoBlend holds the bucket color across the whole bucket
	assert.Equal(t, blueRGB, ColorFromPalette(p, 8, 255, NoBlend))
	assert.Equal(t, blueRGB, ColorFromPalette(p, 15, 255, NoBlend))
}

func TestLinearBlendMatchesRoundedInterpolation(t *testing.T) {
	s := NewStore()
	for _, name := range s.Names() {
		p, _ := s.Get(name)
		for i := 0; i < 256; i++ {
			for _, b := range []uint8{0, 1, 64, 127, 128, 200, 255} {
				got := ColorFromPalette(p, uint8(i), b, LinearBlend)
				if !assert.Equal(t, expectedLinear(p, uint8(i), b), got, "palette %s index %d brightness %d", name, i, b) {
					return
				}
			}
		}
	}
}

func TestLinearBlendProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var hex [Size]uint32
		for i := range hex {
			hex[i] = rapid.Uint32Range(0, 0xFFFFFF).Draw(t, "anchor")
		}
		p := FromHex(hex)
		index := rapid.Uint8().Draw(t, "index")
		brightness := rapid.Uint8().Draw(t, "brightness")

		got := ColorFromPalette(&p, index, brightness, LinearBlend)
		want := expectedLinear(&p, index, brightness)
		if got != want {
			t.Fatalf("index %d brightness %d: got %+v want %+v", index, brightness, got, want)
		}
	})
}

func TestLinearBlendHasNoSeam(t *testing.T) {
	s := NewStore()
	for _, name := range s.Names() {
		p, _ := s.Get(name)

		// largest jump between neighbouring anchors bounds the per-index step
		maxDelta := 0
		for i := 0; i < Size; i++ {
			lo, hi := p[i], p[(i+1)%Size]
			for _, d := range []int{absDiff(lo.R, hi.R), absDiff(lo.G, hi.G), absDiff(lo.B, hi.B)} {
				if d > maxDelta {
					maxDelta = d
				}
			}
		}
		limit := (maxDelta+15)/16 + 1

		prev := ColorFromPalette(p, 0, 255, LinearBlend)
		for i := 1; i <= 256; i++ {
			cur := ColorFromPalette(p, uint8(i), 255, LinearBlend)
			for _, d := range []int{absDiff(prev.R, cur.R), absDiff(prev.G, cur.G), absDiff(prev.B, cur.B)} {
				assert.LessOrEqual(t, d, limit, "palette %s jump at index %d", name, i)
			}
			prev = cur
		}
	}
}

func TestBrightnessTruncates(t *testing.T) {
	p := FromHex([Size]uint32{0xFF8001})
	assert.Equal(t, render.RGB{R: 255, G: 128, B: 1}, ColorFromPalette(&p, 0, 255, NoBlend))
	assert.Equal(t, render.RGB{}, ColorFromPalette(&p, 0, 0, NoBlend))
	// 128*128/255 = 64.25, 255*128/255 = 128, 1*128/255 = 0.5
	assert.Equal(t, render.RGB{R: 128, G: 64, B: 0}, ColorFromPalette(&p, 0, 128, NoBlend))
}

func TestLastBucketWrapsToFirst(t *testing.T) {
	var hex [Size]uint32
	hex[0] = 0x000000
	hex[15] = 0xF0F0F0
	p := FromHex(hex)
	// index 248 is halfway from entry 15 toward entry 0
	assert.Equal(t, render.RGB{R: 120, G: 120, B: 120}, ColorFromPalette(&p, 248, 255, LinearBlend))
}

func TestParseBlend(t *testing.T) {
	b, err := ParseBlend("none")
	assert.NoError(t, err)
	assert.Equal(t, NoBlend, b)

	b, err = ParseBlend("linear")
	assert.NoError(t, err)
	assert.Equal(t, LinearBlend, b)

	_, err = ParseBlend("cubic")
	assert.Error(t, err)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
