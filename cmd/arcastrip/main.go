package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcastrip/internal/app"
	"github.com/coreman2200/arcastrip/internal/config"
	"github.com/coreman2200/arcastrip/internal/transport"
	"github.com/coreman2200/arcastrip/internal/ws"
)

func main() {
	def := config.Default()

	// ---- Flags (remain usable; config.yaml overrides what it sets) ----
	var (
		driver     = flag.String("driver", def.Driver, "driver: spi | sim | log")
		leds       = flag.Int("leds", def.LEDs, "number of pixels on the strip")
		brightness = flag.Int("brightness", def.Brightness, "global brightness 0..255")
		rate       = flag.Int("rate", def.UpdatesPerSecond, "loop iterations per second")
		paletteN   = flag.String("palette", def.Palette, "starting palette")
		blend      = flag.String("blend", def.Blend, "blend: linear | none")
		mode       = flag.String("mode", def.Mode, "animation: cyclic | scroll")
		colorOrder = flag.String("color", def.ColorOrder, "LED color order (e.g. GRB, RGB)")
		link       = flag.String("transport", def.Transport.Kind, "link: serial | websocket | stdio | loopback")
		device     = flag.String("device", def.Transport.Device, "serial device for the radio link")
		baud       = flag.Int("baud", def.Transport.Baud, "serial baud rate")
		peer       = flag.String("peer", "", "websocket URL to dial for the link (empty serves /uart)")
		addr       = flag.String("addr", def.Monitor.Addr, "monitor HTTP listen address (empty disables)")
		logLevel   = flag.String("log-level", def.LogLevel, "log level")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware, loopback link)")
		schedule   = flag.Bool("palette-schedule", def.PaletteSchedule, "switch palette at second 49 of every minute")
		scrollDemo = flag.Bool("scroll-demo", false, "play one scroll run before the main loop")
		writeCfg   = flag.Bool("write-config", false, "write the effective config to -config and exit")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	base := *def
	base.Driver = *driver
	base.LEDs = *leds
	base.Brightness = *brightness
	base.UpdatesPerSecond = *rate
	base.Palette = *paletteN
	base.Blend = *blend
	base.Mode = *mode
	base.ColorOrder = *colorOrder
	base.LogLevel = *logLevel
	base.PaletteSchedule = *schedule
	base.Transport.Kind = *link
	base.Transport.Device = *device
	base.Transport.Baud = *baud
	base.Transport.URL = *peer
	base.Monitor.Addr = *addr

	// ---- Load config.yaml (optional) ----
	cfg, err := config.LoadOver(*configPath, &base)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg = &base
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if cfg.LinkOnStdout() {
		// stdout carries link bytes only
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level; using info")
	}

	if *writeCfg {
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid config")
		}
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config save failed")
		}
		log.Info().Str("path", *configPath).Msg("config written")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mon *ws.Monitor
	var obs app.Observer
	if cfg.Monitor.Addr != "" {
		mon = ws.NewMonitor("")
		mon.Config = cfg
		mon.ConfigPath = *configPath
		obs = mon
	}

	sys, err := app.Bootstrap(ctx, cfg, *simOnly, obs)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	defer func() {
		if err := sys.Close(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}()

	// ---- Monitor server ----
	var srv *http.Server
	if mon != nil {
		mon.SetDriver(sys.DriverName)
		mon.Control = sys.Controller
		var uart http.Handler
		if w, ok := sys.Port.(*transport.WebSocket); ok && cfg.Transport.URL == "" {
			uart = w
		}
		srv = &http.Server{
			Addr:         cfg.Monitor.Addr,
			Handler:      mon.Routes(uart),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go mon.Run(ctx)
		go func() {
			log.Info().Str("addr", cfg.Monitor.Addr).Str("driver", sys.DriverName).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	if *scrollDemo {
		if err := sleepCtx(ctx, cfg.StartupDelay); err == nil {
			c := sys.Controller
			if err := app.PlayScroll(ctx, c); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("scroll demo")
			}
		}
		sys.Runner.StartupDelay = 0
	}

	// ---- Run loop until SIGINT/SIGTERM ----
	if err := sys.Runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("loop stopped")
	}
	log.Info().Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
