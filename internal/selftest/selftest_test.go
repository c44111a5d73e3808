package selftest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcastrip/internal/render"
)

func TestIndexSweep(t *testing.T) {
	f := render.NewFrame(3)
	r := NewRunner(Plan{Kind: IndexSweep})
	white := render.RGB{R: 255, G: 255, B: 255}

	for i := 0; i < 3; i++ {
		require.True(t, r.Step(f))
		for j, c := range f {
			if j == i {
				assert.Equal(t, white, c)
			} else {
				assert.Equal(t, render.RGB{}, c)
			}
		}
	}
	assert.False(t, r.Step(f))
	assert.Equal(t, render.Frame{{}, {}, {}}, f)
}

func TestRGBTestPhases(t *testing.T) {
	f := render.NewFrame(2)
	r := NewRunner(Plan{Kind: RGBTest, Hold: 2})
	want := []render.RGB{{R: 255}, {R: 255}, {G: 255}, {G: 255}, {B: 255}, {B: 255}}
	for _, w := range want {
		require.True(t, r.Step(f))
		assert.Equal(t, w, f[1])
	}
	assert.False(t, r.Step(f))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("rgb_channels")
	require.NoError(t, err)
	assert.Equal(t, RGBTest, k)

	_, err = ParseKind("plane_z")
	assert.Error(t, err)
	assert.False(t, NewRunner(Plan{}).Step(render.NewFrame(1)))
}
