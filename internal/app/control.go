package app

import (
	"errors"
	"fmt"

	"github.com/coreman2200/arcastrip/internal/anim"
	"github.com/coreman2200/arcastrip/internal/diagnostics"
	"github.com/coreman2200/arcastrip/internal/palette"
	"github.com/coreman2200/arcastrip/internal/render"
	"github.com/coreman2200/arcastrip/internal/selftest"
)

const controlQueue = 16

var ErrControlQueueFull = errors.New("control queue full")

// Control is a runtime settings change. Nil fields are left alone.
type Control struct {
	Palette    *string `json:"palette,omitempty"`
	Blend      *string `json:"blend,omitempty"`
	Brightness *int    `json:"brightness,omitempty"`
	Step       *int    `json:"step,omitempty"`
	Rate       *int    `json:"updates_per_second,omitempty"`
	Mode       *string `json:"mode,omitempty"`
	// RunTest starts a selftest pattern that replaces the animation until done.
	RunTest *string `json:"run_test,omitempty"`
}

// Submit queues ctl for the next tick. It never blocks and is safe to call
// from any goroutine.
func (c *Controller) Submit(ctl Control) error {
	select {
	case c.controls <- ctl:
		return nil
	default:
		return ErrControlQueueFull
	}
}

func (c *Controller) applyControls() {
	for {
		select {
		case ctl := <-c.controls:
			if err := c.apply(ctl); err != nil {
				c.publish(diagnostics.Diagnostic{
					Time: c.now(), Severity: diagnostics.Warn, Code: diagnostics.CodeControlError,
					Summary: "control rejected", Detail: err.Error(),
				})
				continue
			}
			c.publish(diagnostics.Diagnostic{
				Time: c.now(), Severity: diagnostics.Info, Code: diagnostics.CodeControl,
				Summary: "control applied",
			})
		default:
			return
		}
	}
}

// apply validates the whole control before changing anything.
func (c *Controller) apply(ctl Control) error {
	blend := c.State.Blend
	if ctl.Blend != nil {
		b, err := palette.ParseBlend(*ctl.Blend)
		if err != nil {
			return err
		}
		blend = b
	}
	if ctl.Palette != nil {
		if _, ok := c.State.Palettes.Get(*ctl.Palette); !ok {
			return fmt.Errorf("%w: %q", palette.ErrUnknownPalette, *ctl.Palette)
		}
	}
	mode := c.mode
	if ctl.Mode != nil {
		m, err := ParseMode(*ctl.Mode)
		if err != nil {
			return err
		}
		mode = m
	}
	var test selftest.Kind
	if ctl.RunTest != nil {
		k, err := selftest.ParseKind(*ctl.RunTest)
		if err != nil {
			return err
		}
		test = k
	}
	if ctl.Brightness != nil && (*ctl.Brightness < 0 || *ctl.Brightness > 255) {
		return fmt.Errorf("brightness out of range: %d", *ctl.Brightness)
	}
	if ctl.Step != nil && (*ctl.Step < 0 || *ctl.Step > 255) {
		return fmt.Errorf("step out of range: %d", *ctl.Step)
	}
	if ctl.Rate != nil && *ctl.Rate <= 0 {
		return fmt.Errorf("updates_per_second must be > 0: %d", *ctl.Rate)
	}

	if ctl.Palette != nil {
		_ = c.State.Palettes.SetActive(*ctl.Palette)
	}
	c.State.Blend = blend
	if mode != c.mode {
		c.mode = mode
		c.frame.Fill(render.RGB{})
		c.scroll = anim.NewScroll()
	}
	if ctl.Brightness != nil {
		c.State.Brightness = uint8(*ctl.Brightness)
	}
	if ctl.Step != nil {
		c.State.Step = uint8(*ctl.Step)
	}
	if ctl.Rate != nil {
		c.rate = *ctl.Rate
	}
	if test != selftest.None {
		c.test = selftest.NewRunner(selftest.Plan{Kind: test, Hold: c.rate / 2})
	}
	return nil
}
