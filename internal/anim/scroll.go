package anim

import (
	"context"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/arcastrip/internal/render"
)

const (
	// ScrollFade is subtracted from every pixel per step, in 1/256ths.
	ScrollFade uint8 = 40
	// ScrollDelay is the pause between steps of a Run.
	ScrollDelay = 33 * time.Millisecond
)

// Scroll is the bounded fade-and-mirror animation: len(frame)/2 steps, each
// fading the strip, painting one pixel with the next hue and mirroring the
// lower half onto the upper half.
type Scroll struct {
	Hue   uint8
	Delay time.Duration
	Sleep func(time.Duration) // defaults to time.Sleep

	pos int
}

func NewScroll() *Scroll {
	return &Scroll{Delay: ScrollDelay, Sleep: time.Sleep}
}

// Steps is the number of steps in one run over a frame of n pixels.
func Steps(n int) int { return n / 2 }

// Step performs the next step of the current run on dst. It returns true when
// the run is complete; the next call starts a new run.
func (s *Scroll) Step(dst render.Frame) bool {
	half := Steps(len(dst))
	if half == 0 {
		return true
	}
	for i := range dst {
		dst[i] = dst[i].FadeToBlackBy(ScrollFade)
	}
	dst[s.pos] = Hue(s.Hue)
	s.Hue++

	// pixel[half+k] = pixel[half-1-k]
	for k := 0; k < half; k++ {
		dst[half+k] = dst[half-1-k]
	}

	s.pos++
	if s.pos >= half {
		s.pos = 0
		return true
	}
	return false
}

// Run plays one complete run, flushing after every step. It stops early if ctx
// is done or flush fails.
func (s *Scroll) Run(ctx context.Context, dst render.Frame, flush func(render.Frame) error) error {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	s.pos = 0
	for {
		done := s.Step(dst)
		if err := flush(dst); err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sleep(s.Delay)
	}
}

// Hue returns the fully saturated, full value color for an 8-bit hue.
func Hue(h uint8) render.RGB {
	r, g, b := colorful.Hsv(float64(h)*360.0/256.0, 1, 1).RGB255()
	return render.RGB{R: r, G: g, B: b}
}
