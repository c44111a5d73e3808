package anim

import (
	"github.com/coreman2200/arcastrip/internal/palette"
)

// DefaultBrightness matches the strip's power-on brightness.
const DefaultBrightness uint8 = 64

// State is the mutable animation record. It is owned by the control loop;
// nothing else writes to it.
type State struct {
	Palettes   *palette.Store
	Blend      palette.Blend
	Index      uint8 // rolling color index, wraps mod 256
	Step       uint8 // added to Index once per tick
	Brightness uint8 // global strip brightness applied at flush
}

func NewState(store *palette.Store) *State {
	if store == nil {
		store = palette.NewStore()
	}
	return &State{
		Palettes:   store,
		Blend:      palette.LinearBlend,
		Step:       1,
		Brightness: DefaultBrightness,
	}
}

// Palette returns the active palette.
func (s *State) Palette() *palette.Palette { return s.Palettes.Active() }

// Advance moves the color index forward by one step.
func (s *State) Advance() { s.Index += s.Step }
