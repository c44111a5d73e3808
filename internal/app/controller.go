package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreman2200/arcastrip/internal/anim"
	"github.com/coreman2200/arcastrip/internal/diagnostics"
	"github.com/coreman2200/arcastrip/internal/led"
	"github.com/coreman2200/arcastrip/internal/palette"
	"github.com/coreman2200/arcastrip/internal/protocol"
	"github.com/coreman2200/arcastrip/internal/render"
	"github.com/coreman2200/arcastrip/internal/selftest"
	"github.com/coreman2200/arcastrip/internal/transport"
)

type Mode string

const (
	ModeCyclic Mode = "cyclic"
	ModeScroll Mode = "scroll"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCyclic, "":
		return ModeCyclic, nil
	case ModeScroll:
		return ModeScroll, nil
	}
	return ModeCyclic, fmt.Errorf("unknown mode %q", s)
}

// Status is the controller snapshot published after every tick.
type Status struct {
	FrameID    uint64 `json:"frame_id"`
	Count      int    `json:"count"`
	Mode       Mode   `json:"mode"`
	Palette    string `json:"palette"`
	Blend      string `json:"blend"`
	Index      uint8  `json:"index"`
	Step       uint8  `json:"step"`
	Brightness uint8  `json:"brightness"`
	Rate       int    `json:"updates_per_second"`
	Indicator  bool   `json:"indicator"`
	Button     string `json:"button"`
	Test       string `json:"test,omitempty"`
}

// Observer receives what the controller produces. Calls come from the control
// goroutine; rgb is reused by the next tick and must be copied if kept.
type Observer interface {
	Frame(s Status, rgb []byte)
	Diagnostic(d diagnostics.Diagnostic)
}

type Options struct {
	LEDs       int
	Rate       int
	Mode       Mode
	Correction uint32
	// Schedule, if non-nil, is applied at the start of every tick.
	Schedule *anim.PaletteSchedule
	Observer Observer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller owns every piece of mutable state and runs one loop iteration
// per Tick. It must only be driven from a single goroutine.
type Controller struct {
	State *anim.State

	port     transport.Port
	driver   led.Driver
	interp   *protocol.Interpreter
	button   *protocol.Button
	cyclic   anim.Cyclic
	scroll   *anim.Scroll
	schedule *anim.PaletteSchedule
	test     *selftest.Runner
	observer Observer

	mode       Mode
	rate       int
	correction uint32
	frameID    uint64
	start      time.Time
	now        func() time.Time

	frame    render.Frame
	out      render.Frame
	wire     []byte
	controls chan Control
}

// NewController wires a state record to its collaborators. The button and
// the echo of every inbound byte both write to port.
func NewController(state *anim.State, port transport.Port, driver led.Driver, button protocol.Sampler, indicator protocol.Indicator, opts Options) (*Controller, error) {
	if opts.LEDs <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", opts.LEDs)
	}
	if port == nil || driver == nil || button == nil {
		return nil, errors.New("controller needs a port, a driver and a button")
	}
	if state == nil {
		state = anim.NewState(nil)
	}
	if opts.Rate <= 0 {
		opts.Rate = 100
	}
	if opts.Mode == "" {
		opts.Mode = ModeCyclic
	}
	if opts.Correction == 0 {
		opts.Correction = render.UncorrectedColor
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Controller{
		State:      state,
		port:       port,
		driver:     driver,
		interp:     protocol.NewInterpreter(port, indicator),
		button:     protocol.NewButton(button, port),
		scroll:     anim.NewScroll(),
		schedule:   opts.Schedule,
		observer:   opts.Observer,
		mode:       opts.Mode,
		rate:       opts.Rate,
		correction: opts.Correction,
		now:        opts.Now,
		start:      opts.Now(),
		frame:      render.NewFrame(opts.LEDs),
		out:        render.NewFrame(opts.LEDs),
		wire:       make([]byte, opts.LEDs*3),
		controls:   make(chan Control, controlQueue),
	}
	if c.observer != nil {
		c.interp.OnCommand = func(b byte, cmd protocol.Command) {
			c.observer.Diagnostic(diagnostics.Command(b, cmd))
		}
	}
	return c, nil
}

// Rate is the configured number of ticks per second.
func (c *Controller) Rate() int { return c.rate }

func (c *Controller) Mode() Mode { return c.mode }

// Interpreter exposes the command decoder, mainly for the indicator state.
func (c *Controller) Interpreter() *protocol.Interpreter { return c.interp }

func (c *Controller) Frame() render.Frame { return c.frame }

// Tick runs one loop iteration: queued controls, the palette schedule, the
// inbound bytes buffered right now, one animation step, the flush and one
// button poll. Faults of the iteration are joined; none stops the others.
func (c *Controller) Tick() error {
	var errs []error

	c.applyControls()

	if c.schedule != nil {
		switched, err := c.schedule.Apply(c.now().Sub(c.start), c.State)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette schedule: %w", err))
		} else if switched {
			c.publish(diagnostics.Diagnostic{
				Time: c.now(), Severity: diagnostics.Info, Code: diagnostics.CodeSchedule,
				Summary: "palette switched", Detail: c.State.Palettes.ActiveName(),
			})
		}
	}

	// Bytes arriving during the drain wait for the next tick.
	for n := c.port.Buffered(); n > 0; n-- {
		b, err := c.port.ReadByte()
		if err != nil {
			if !errors.Is(err, transport.ErrNoData) {
				errs = append(errs, fmt.Errorf("read: %w", err))
			}
			break
		}
		if _, err := c.interp.Handle(b); err != nil {
			errs = append(errs, err)
		}
	}

	c.animate()
	if err := c.Flush(c.frame); err != nil {
		errs = append(errs, err)
	}

	changed, err := c.button.Poll()
	if err != nil {
		errs = append(errs, err)
	}
	if changed {
		c.publish(diagnostics.Button(c.button.Last()))
	}

	err = errors.Join(errs...)
	if err != nil {
		c.publish(diagnostics.TickFault(err))
	}
	return err
}

func (c *Controller) animate() {
	if c.test != nil {
		if c.test.Step(c.frame) {
			return
		}
		c.publish(diagnostics.Diagnostic{
			Time: c.now(), Severity: diagnostics.Info, Code: diagnostics.CodeTestDone,
			Summary: "test complete", Detail: string(c.test.Kind()),
		})
		c.test = nil
	}
	switch c.mode {
	case ModeScroll:
		c.scroll.Step(c.frame)
	default:
		c.cyclic.Tick(c.frame, c.State)
	}
}

// Flush applies global brightness and color correction to f and writes it
// to the strip.
func (c *Controller) Flush(f render.Frame) error {
	render.Output(c.out, f, c.State.Brightness, c.correction)
	c.wire = c.out.Bytes(c.wire)
	c.frameID++
	err := c.driver.Write(c.wire)
	if c.observer != nil {
		c.observer.Frame(c.Status(), c.wire)
	}
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Status snapshots the controller. Call it from the control goroutine.
func (c *Controller) Status() Status {
	var test string
	if c.test != nil {
		test = string(c.test.Kind())
	}
	return Status{
		Test:       test,
		FrameID:    c.frameID,
		Count:      len(c.frame),
		Mode:       c.mode,
		Palette:    c.State.Palettes.ActiveName(),
		Blend:      c.State.Blend.String(),
		Index:      c.State.Index,
		Step:       c.State.Step,
		Brightness: c.State.Brightness,
		Rate:       c.rate,
		Indicator:  c.interp.IndicatorOn(),
		Button:     c.button.Last().String(),
	}
}

func (c *Controller) publish(d diagnostics.Diagnostic) {
	if c.observer != nil {
		c.observer.Diagnostic(d)
	}
}

// SetPalette is a convenience for selecting a palette and blend together.
func (c *Controller) SetPalette(name string, blend palette.Blend) error {
	if err := c.State.Palettes.SetActive(name); err != nil {
		return err
	}
	c.State.Blend = blend
	return nil
}

// PlayScroll plays one complete scroll run on the controller's frame,
// flushing every step. It does not touch the link or the button.
func PlayScroll(ctx context.Context, c *Controller) error {
	return anim.NewScroll().Run(ctx, c.frame, c.Flush)
}
