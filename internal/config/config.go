package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/arcastrip/internal/palette"
)

// SPI names the port feeding the strip. The clock is fixed by the NRZ encoder.
type SPI struct {
	Dev string `yaml:"dev"` // "" picks the first port, e.g. /dev/spidev0.0
}

type Pins struct {
	Button    string `yaml:"button"`
	Indicator string `yaml:"indicator"`
}

type Transport struct {
	Kind   string `yaml:"kind"`   // "serial" | "websocket" | "stdio" | "loopback"
	Device string `yaml:"device"` // serial device, e.g. /dev/ttyUSB0
	Baud   int    `yaml:"baud"`
	URL    string `yaml:"url"` // websocket peer to dial; empty serves on monitor /uart
	Buffer int    `yaml:"buffer"`
}

type Monitor struct {
	Addr string `yaml:"addr"` // empty disables the HTTP monitor
}

type Config struct {
	Driver           string        `yaml:"driver"` // "spi" | "sim" | "log"
	LEDs             int           `yaml:"leds"`
	ColorOrder       string        `yaml:"color_order"`
	Correction       string        `yaml:"correction"` // hex 0xRRGGBB or a named correction
	Brightness       int           `yaml:"brightness"`
	UpdatesPerSecond int           `yaml:"updates_per_second"`
	Mode             string        `yaml:"mode"` // "cyclic" | "scroll"
	Palette          string        `yaml:"palette"`
	Blend            string        `yaml:"blend"`
	Step             int           `yaml:"step"`
	PaletteSchedule  bool          `yaml:"palette_schedule"`
	StartupDelay     time.Duration `yaml:"startup_delay"`
	LogLevel         string        `yaml:"log_level"`

	SPI       SPI       `yaml:"spi,omitempty"`
	Pins      Pins      `yaml:"pins"`
	Transport Transport `yaml:"transport"`
	Monitor   Monitor   `yaml:"monitor"`
}

// Default mirrors the stock strip: 100 pixels at brightness 64, 100 updates
// per second, rainbow with linear blending.
func Default() *Config {
	return &Config{
		Driver:           "spi",
		LEDs:             100,
		ColorOrder:       "RGB",
		Correction:       "typical_led_strip",
		Brightness:       64,
		UpdatesPerSecond: 100,
		Mode:             "cyclic",
		Palette:          "rainbow",
		Blend:            "linear",
		Step:             1,
		StartupDelay:     3 * time.Second,
		LogLevel:         "info",
		Pins:             Pins{Button: "GPIO13", Indicator: "GPIO7"},
		Transport:        Transport{Kind: "serial", Device: "/dev/ttyUSB0", Baud: 9600, Buffer: 256},
		Monitor:          Monitor{Addr: ":8080"},
	}
}

// Load reads path over Default, so keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, Default())
}

// LoadOver reads path over a copy of base; keys set in the file win.
func LoadOver(path string, base *Config) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := *base
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LinkOnStdout reports whether the byte link owns stdout, in which case
// logs and the console strip must stay off it.
func (c *Config) LinkOnStdout() bool { return c.Transport.Kind == "stdio" }

var corrections = map[string]uint32{
	"uncorrected":       0xFFFFFF,
	"typical_led_strip": 0xFFB0F0,
	"typical_smd5050":   0xFFB0F0,
	"typical_8mm_pixel": 0xFFE08C,
}

// CorrectionValue resolves Correction to a 0xRRGGBB value.
func (c *Config) CorrectionValue() (uint32, error) {
	s := strings.ToLower(strings.TrimSpace(c.Correction))
	if s == "" {
		return 0xFFFFFF, nil
	}
	if v, ok := corrections[s]; ok {
		return v, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 24)
	if err != nil {
		return 0, fmt.Errorf("invalid correction %q", c.Correction)
	}
	return uint32(v), nil
}

// Validate reports every out of range or unknown setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.LEDs <= 0 {
		errs = append(errs, fmt.Errorf("leds must be > 0, got %d", c.LEDs))
	}
	if c.UpdatesPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("updates_per_second must be > 0, got %d", c.UpdatesPerSecond))
	}
	if c.Brightness < 0 || c.Brightness > 255 {
		errs = append(errs, fmt.Errorf("brightness must be 0..255, got %d", c.Brightness))
	}
	if c.Step < 0 || c.Step > 255 {
		errs = append(errs, fmt.Errorf("step must be 0..255, got %d", c.Step))
	}
	if c.StartupDelay < 0 {
		errs = append(errs, fmt.Errorf("startup_delay must not be negative"))
	}
	if !oneOf(c.Driver, "spi", "sim", "log") {
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	if !oneOf(c.Mode, "cyclic", "scroll") {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if !oneOf(c.Transport.Kind, "serial", "websocket", "stdio", "loopback") {
		errs = append(errs, fmt.Errorf("unknown transport %q", c.Transport.Kind))
	}
	if c.Transport.Kind == "serial" && c.Transport.Baud <= 0 {
		errs = append(errs, fmt.Errorf("transport.baud must be > 0 for serial"))
	}
	if c.Transport.Kind == "websocket" && c.Transport.URL == "" && c.Monitor.Addr == "" {
		errs = append(errs, fmt.Errorf("websocket transport needs transport.url or monitor.addr"))
	}
	if _, err := palette.ParseBlend(c.Blend); err != nil {
		errs = append(errs, err)
	}
	if _, ok := palette.NewStore().Get(c.Palette); !ok {
		errs = append(errs, fmt.Errorf("unknown palette %q", c.Palette))
	}
	if _, err := c.CorrectionValue(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func oneOf(s string, opts ...string) bool {
	for _, o := range opts {
		if s == o {
			return true
		}
	}
	return false
}
