package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/coreman2200/arcastrip/internal/palette"
	"github.com/coreman2200/arcastrip/internal/render"
)

func TestCyclicFillSpacing(t *testing.T) {
	st := NewState(nil)
	require.NoError(t, st.Palettes.SetActive(palette.TripleStrange))
	st.Blend = palette.NoBlend
	st.Index = 10

	frame := render.NewFrame(100)
	Cyclic{}.Tick(frame, st)

	p := st.Palette()
	for i := range frame {
		idx := uint8(10 + i*3)
		assert.Equal(t, palette.ColorFromPalette(p, idx, 255, palette.NoBlend), frame[i], "pixel %d", i)
	}
	assert.EqualValues(t, 11, st.Index)
}

func TestCyclicIndexWraps(t *testing.T) {
	st := NewState(nil)
	st.Index = 250
	st.Step = 10
	Cyclic{}.Tick(render.NewFrame(4), st)
	assert.EqualValues(t, 4, st.Index)
}

func TestAdvanceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c0 := rapid.Uint8().Draw(t, "c0")
		step := rapid.Uint8().Draw(t, "step")
		k := rapid.IntRange(0, 2000).Draw(t, "k")

		st := &State{Palettes: palette.NewStore(), Index: c0, Step: step}
		for i := 0; i < k; i++ {
			st.Advance()
		}
		want := uint8((int(c0) + k*int(step)) % 256)
		if st.Index != want {
			t.Fatalf("after %d steps of %d from %d: got %d want %d", k, step, c0, st.Index, want)
		}
	})
}

func TestCyclicFrameTravels(t *testing.T) {
	st := NewState(nil)
	st.Step = PixelSpacing
	a := render.NewFrame(8)
	b := render.NewFrame(8)
	Cyclic{}.Tick(a, st)
	Cyclic{}.Tick(b, st)
	// stepping by the pixel spacing shifts the gradient by exactly one pixel
	assert.Equal(t, []render.RGB(a[1:]), []render.RGB(b[:7]))
}
