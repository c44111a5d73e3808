// Package selftest renders wiring check patterns in place of the animation.
package selftest

import (
	"fmt"

	"github.com/coreman2200/arcastrip/internal/render"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
)

// DefaultHold is how many ticks each RGBTest phase stays lit.
const DefaultHold = 50

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case IndexSweep, RGBTest:
		return Kind(s), nil
	}
	return None, fmt.Errorf("unknown test %q", s)
}

type Plan struct {
	Kind Kind
	Hold int // ticks per RGBTest phase, DefaultHold if zero
}

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner {
	if plan.Hold <= 0 {
		plan.Hold = DefaultHold
	}
	return &Runner{plan: plan}
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step fills dst with the next pattern frame; returns false when complete,
// leaving dst dark.
func (r *Runner) Step(dst render.Frame) bool {
	dst.Fill(render.RGB{})
	n := len(dst)

	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		dst[r.step] = render.RGB{R: 255, G: 255, B: 255}
	case RGBTest:
		phase := r.step / r.plan.Hold
		if phase >= 3 {
			return false
		}
		var c render.RGB
		switch phase {
		case 0:
			c.R = 255
		case 1:
			c.G = 255
		case 2:
			c.B = 255
		}
		dst.Fill(c)
	default:
		return false
	}
	r.step++
	return true
}
