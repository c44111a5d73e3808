package led

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Sim draws frames on a display.Drawer, by default an ANSI console strip.
type Sim struct {
	mu       sync.Mutex
	drawer   display.Drawer
	img      *image.NRGBA
	throttle time.Duration
	lastDraw time.Time
}

// NewSim draws count pixels to the console, at most every 50ms.
func NewSim(count int) *Sim {
	return NewSimDrawer(screen.New(count), count, 50*time.Millisecond)
}

func NewSimDrawer(d display.Drawer, count int, throttle time.Duration) *Sim {
	return &Sim{
		drawer:   d,
		img:      image.NewNRGBA(image.Rect(0, 0, count, 1)),
		throttle: throttle,
	}
}

func (s *Sim) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.img.Rect.Dx()
	if len(rgb) != n*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), n)
	}
	now := time.Now()
	if s.throttle > 0 && s.lastDraw.Add(s.throttle).After(now) {
		return nil
	}
	s.lastDraw = now
	for x := 0; x < n; x++ {
		s.img.SetNRGBA(x, 0, color.NRGBA{R: rgb[x*3], G: rgb[x*3+1], B: rgb[x*3+2], A: 255})
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *Sim) Close() error { return s.drawer.Halt() }
