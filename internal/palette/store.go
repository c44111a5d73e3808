package palette

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPalette = errors.New("unknown palette")

// Store holds the build-time palettes and the one active selection.
// It is owned by the control loop and is not safe for concurrent use.
type Store struct {
	m      map[string]*Palette
	active string
}

// NewStore returns a store with every preset registered and Rainbow active.
func NewStore() *Store {
	s := &Store{m: make(map[string]*Palette, len(presets))}
	for name, p := range presets {
		s.Register(name, p)
	}
	s.active = Rainbow
	return s
}

// Register adds or replaces a named palette. The table is copied.
func (s *Store) Register(name string, p Palette) {
	if name == "" {
		return
	}
	cp := p
	s.m[name] = &cp
}

func (s *Store) Get(name string) (*Palette, bool) { p, ok := s.m[name]; return p, ok }

func (s *Store) Names() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetActive selects the named palette. The selection is unchanged on error.
func (s *Store) SetActive(name string) error {
	if _, ok := s.m[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPalette, name)
	}
	s.active = name
	return nil
}

func (s *Store) ActiveName() string { return s.active }

func (s *Store) Active() *Palette { return s.m[s.active] }
