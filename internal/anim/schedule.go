package anim

import (
	"time"

	"github.com/coreman2200/arcastrip/internal/palette"
)

// PaletteSchedule switches to an alternate palette when the elapsed time,
// in seconds mod 60, hits Second. It acts at most once per second mark and
// only when the owner calls Apply.
type PaletteSchedule struct {
	Second  int
	Palette string
	Blend   palette.Blend

	last int
}

func NewPaletteSchedule() *PaletteSchedule {
	return &PaletteSchedule{
		Second:  49,
		Palette: palette.TripleStrange,
		Blend:   palette.LinearBlend,
		last:    -1,
	}
}

// Due reports whether elapsed falls on the schedule's second mark.
func (p *PaletteSchedule) Due(elapsed time.Duration) bool {
	return int(elapsed/time.Second)%60 == p.Second
}

// Apply updates s if a new second mark was reached and it is the scheduled one.
// It returns true when the palette was switched.
func (p *PaletteSchedule) Apply(elapsed time.Duration, s *State) (bool, error) {
	sec := int(elapsed/time.Second) % 60
	if sec == p.last {
		return false, nil
	}
	p.last = sec
	if sec != p.Second {
		return false, nil
	}
	if err := s.Palettes.SetActive(p.Palette); err != nil {
		return false, err
	}
	s.Blend = p.Blend
	return true, nil
}
