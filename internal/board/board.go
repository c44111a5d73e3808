// Package board brings up the host and resolves the strip's discrete pins.
package board

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"
)

// Pins are the polled button input and the command-driven indicator output.
type Pins struct {
	Button    gpio.PinIn
	Indicator gpio.PinOut
}

// Init loads the periph host drivers. It must run before Open or led.OpenNRZ.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	return nil
}

// Open looks up both pins by name, configures the button as a floating input
// and drives the indicator low.
func Open(button, indicator string) (*Pins, error) {
	btn := gpioreg.ByName(button)
	if btn == nil {
		return nil, fmt.Errorf("button pin %q not found", button)
	}
	if err := btn.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button pin %s: %w", btn, err)
	}
	ind := gpioreg.ByName(indicator)
	if ind == nil {
		return nil, fmt.Errorf("indicator pin %q not found", indicator)
	}
	if err := ind.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("indicator pin %s: %w", ind, err)
	}
	return &Pins{Button: btn, Indicator: ind}, nil
}

// Sim returns in-memory pins. The button reads released (high) until its L
// field is changed.
func Sim(button, indicator string) (*Pins, *gpiotest.Pin, *gpiotest.Pin) {
	btn := &gpiotest.Pin{N: button, L: gpio.High}
	ind := &gpiotest.Pin{N: indicator, L: gpio.Low}
	return &Pins{Button: btn, Indicator: ind}, btn, ind
}
