package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcastrip/internal/anim"
	"github.com/coreman2200/arcastrip/internal/board"
	"github.com/coreman2200/arcastrip/internal/config"
	"github.com/coreman2200/arcastrip/internal/led"
	"github.com/coreman2200/arcastrip/internal/palette"
	"github.com/coreman2200/arcastrip/internal/transport"
)

// System is everything Bootstrap opened. Close releases it in reverse order.
type System struct {
	Controller *Controller
	Runner     *Runner
	Driver     led.Driver
	DriverName string
	Port       transport.Port
	Pins       *board.Pins
}

// Bootstrap opens the hardware described by cfg and builds the controller.
// With simOnly, or when the host or SPI cannot be brought up, it falls back
// to the console strip and in-memory pins.
func Bootstrap(ctx context.Context, cfg *config.Config, simOnly bool, obs Observer) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	hw := !simOnly
	if hw {
		if err := board.Init(); err != nil {
			log.Warn().Err(err).Msg("host init failed; falling back to SIM")
			hw = false
		}
	}

	sys := &System{}
	sys.Driver, sys.DriverName = openDriver(cfg, hw)
	sys.Pins = openPins(cfg, hw)

	port, err := openTransport(ctx, cfg, simOnly)
	if err != nil {
		_ = sys.Driver.Close()
		return nil, err
	}
	sys.Port = port

	store := palette.NewStore()
	state := anim.NewState(store)
	if err := store.SetActive(cfg.Palette); err != nil {
		_ = sys.Close()
		return nil, err
	}
	state.Blend, _ = palette.ParseBlend(cfg.Blend)
	state.Step = uint8(cfg.Step)
	state.Brightness = uint8(cfg.Brightness)

	mode, _ := ParseMode(cfg.Mode)
	corr, _ := cfg.CorrectionValue()
	opts := Options{
		LEDs:       cfg.LEDs,
		Rate:       cfg.UpdatesPerSecond,
		Mode:       mode,
		Correction: corr,
		Observer:   obs,
	}
	if cfg.PaletteSchedule {
		opts.Schedule = anim.NewPaletteSchedule()
	}
	sys.Controller, err = NewController(state, port, sys.Driver, sys.Pins.Button, sys.Pins.Indicator, opts)
	if err != nil {
		_ = sys.Close()
		return nil, err
	}
	sys.Runner = &Runner{C: sys.Controller, StartupDelay: cfg.StartupDelay}

	log.Info().
		Str("driver", sys.DriverName).
		Str("transport", cfg.Transport.Kind).
		Int("leds", cfg.LEDs).
		Int("rate", cfg.UpdatesPerSecond).
		Str("palette", cfg.Palette).
		Str("mode", string(mode)).
		Bool("palette_schedule", cfg.PaletteSchedule).
		Msg("controller ready")
	return sys, nil
}

func openDriver(cfg *config.Config, hw bool) (led.Driver, string) {
	fallback := "sim"
	if cfg.LinkOnStdout() {
		// the console strip would draw into the link
		fallback = "log"
	}
	selected := cfg.Driver
	if selected == "sim" && fallback != "sim" {
		log.Warn().Msg("sim driver draws on stdout, which carries the stdio link; using log driver")
	}
	if selected == "sim" || (!hw && selected == "spi") {
		selected = fallback
	}
	switch selected {
	case "spi":
		drv, err := led.OpenNRZ(cfg.SPI.Dev, cfg.LEDs, cfg.ColorOrder)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", cfg.SPI.Dev).
				Stringer("freq", led.Freq).
				Str("fallback", fallback).
				Msg("SPI init failed; falling back")
			return openDriver(withDriver(cfg, fallback), false)
		}
		return drv, "spi"
	case "log":
		return &led.Log{}, "log"
	default:
		return led.NewSim(cfg.LEDs), "sim"
	}
}

func withDriver(cfg *config.Config, name string) *config.Config {
	c := *cfg
	c.Driver = name
	return &c
}

func openPins(cfg *config.Config, hw bool) *board.Pins {
	if hw {
		p, err := board.Open(cfg.Pins.Button, cfg.Pins.Indicator)
		if err == nil {
			return p
		}
		log.Warn().Err(err).
			Str("button", cfg.Pins.Button).
			Str("indicator", cfg.Pins.Indicator).
			Msg("GPIO init failed; using simulated pins")
	}
	p, _, _ := board.Sim(cfg.Pins.Button, cfg.Pins.Indicator)
	return p
}

func openTransport(ctx context.Context, cfg *config.Config, simOnly bool) (transport.Port, error) {
	t := cfg.Transport
	kind := t.Kind
	if simOnly && kind == "serial" {
		kind = "loopback"
	}
	switch kind {
	case "serial":
		return transport.OpenSerial(transport.SerialConfig{Device: t.Device, Baud: t.Baud, Buffer: t.Buffer})
	case "websocket":
		if t.URL == "" {
			// peer attaches through the monitor's /uart endpoint
			return transport.NewWebSocket(t.Buffer), nil
		}
		return transport.DialWebSocket(ctx, t.URL, t.Buffer)
	case "stdio":
		return transport.NewStream("stdio", os.Stdin, os.Stdout, nil, t.Buffer), nil
	case "loopback":
		return transport.NewLoopback(), nil
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}

func (s *System) Close() error {
	var errs []error
	if s.Port != nil {
		errs = append(errs, s.Port.Close())
	}
	if s.Driver != nil {
		errs = append(errs, s.Driver.Close())
	}
	return errors.Join(errs...)
}
