package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.LEDs)
	assert.Equal(t, 64, c.Brightness)
	assert.Equal(t, 100, c.UpdatesPerSecond)
	assert.Equal(t, 9600, c.Transport.Baud)
	assert.False(t, c.PaletteSchedule)
	assert.Equal(t, "RGB", c.ColorOrder)
	assert.False(t, c.LinkOnStdout())

	c.Transport.Kind = "stdio"
	assert.True(t, c.LinkOnStdout())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: sim
leds: 30
palette: ocean
blend: none
startup_delay: 500ms
transport:
  kind: loopback
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "sim", c.Driver)
	assert.Equal(t, 30, c.LEDs)
	assert.Equal(t, "ocean", c.Palette)
	assert.Equal(t, 500*time.Millisecond, c.StartupDelay)
	assert.Equal(t, "loopback", c.Transport.Kind)
	// untouched keys keep defaults
	assert.Equal(t, 64, c.Brightness)
	assert.Equal(t, 9600, c.Transport.Baud)
}

func TestLoadOverKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("leds: 12\n"), 0644))

	base := Default()
	base.Palette = "forest"
	c, err := LoadOver(path, base)
	require.NoError(t, err)
	assert.Equal(t, 12, c.LEDs)
	assert.Equal(t, "forest", c.Palette)
	assert.Equal(t, 100, base.LEDs, "base not modified")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Palette = "lava"
	c.PaletteSchedule = true
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("leds: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Default()
	c.LEDs = 0
	c.UpdatesPerSecond = -1
	c.Mode = "sparkle"
	c.Palette = "nope"
	c.Blend = "cubic"
	c.Correction = "0xZZ"

	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{"leds", "updates_per_second", "sparkle", "nope", "cubic", "0xZZ"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestCorrectionValue(t *testing.T) {
	c := Default()
	v, err := c.CorrectionValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFB0F0), v)

	c.Correction = "0xFFE08C"
	v, err = c.CorrectionValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFE08C), v)

	c.Correction = ""
	v, err = c.CorrectionValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFF), v)

	c.Correction = "0x1FFFFFF"
	_, err = c.CorrectionValue()
	assert.Error(t, err)
}
