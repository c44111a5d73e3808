package protocol

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
)

// Indicator is the auxiliary output driven by commands; gpio.PinOut fits.
type Indicator interface {
	Out(l gpio.Level) error
}

// Interpreter decodes inbound bytes one at a time, applies them and echoes
// each byte to the outbound channel.
type Interpreter struct {
	echo      io.ByteWriter
	indicator Indicator
	on        bool

	// OnCommand, if set, is called after each byte is handled.
	OnCommand func(b byte, c Command)
}

func NewInterpreter(echo io.ByteWriter, indicator Indicator) *Interpreter {
	return &Interpreter{echo: echo, indicator: indicator}
}

// Handle echoes b, then executes its command. The returned error only reports
// I/O faults; the branch taken depends on b alone.
func (in *Interpreter) Handle(b byte) (Command, error) {
	var errs []error
	if in.echo != nil {
		if err := in.echo.WriteByte(b); err != nil {
			errs = append(errs, fmt.Errorf("echo: %w", err))
		}
	}
	c := Decode(b)
	if err := in.Execute(c); err != nil {
		errs = append(errs, err)
	}
	if in.OnCommand != nil {
		in.OnCommand(b, c)
	}
	return c, errors.Join(errs...)
}

// Execute applies a decoded command.
func (in *Interpreter) Execute(c Command) error {
	switch c {
	case CmdIndicatorOff:
		return in.setIndicator(false)
	case CmdIndicatorOn:
		return in.setIndicator(true)
	}
	return nil
}

// IndicatorOn reports the last commanded indicator state.
func (in *Interpreter) IndicatorOn() bool { return in.on }

func (in *Interpreter) setIndicator(on bool) error {
	in.on = on
	if in.indicator == nil {
		return nil
	}
	if err := in.indicator.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("indicator: %w", err)
	}
	return nil
}
