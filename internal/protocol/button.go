package protocol

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
)

// Level is a sampled input level with a sentinel for "never sampled".
type Level int8

const (
	LevelUnknown Level = -1
	LevelLow     Level = 0
	LevelHigh    Level = 1
)

func LevelOf(l gpio.Level) Level {
	if l == gpio.High {
		return LevelHigh
	}
	return LevelLow
}

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Report is the byte sent for a newly observed level: its logical negation.
func Report(l Level) byte {
	if l == LevelHigh {
		return 0
	}
	return 1
}

// Sampler is a polled two-level input; gpio.PinIn fits.
type Sampler interface {
	Read() gpio.Level
}

// Button reports level changes of a polled input. There is no time-based
// debounce: a report goes out whenever the sample differs from the previous one.
type Button struct {
	pin  Sampler
	out  io.ByteWriter
	last Level
}

func NewButton(pin Sampler, out io.ByteWriter) *Button {
	return &Button{pin: pin, out: out, last: LevelUnknown}
}

// Last returns the previously sampled level, LevelUnknown before the first poll.
func (b *Button) Last() Level { return b.last }

// Poll samples the pin once. On a change it stores the new level and writes
// its report byte; changed is true even if the write failed.
func (b *Button) Poll() (changed bool, err error) {
	level := LevelOf(b.pin.Read())
	if level == b.last {
		return false, nil
	}
	b.last = level
	if b.out == nil {
		return true, nil
	}
	if err := b.out.WriteByte(Report(level)); err != nil {
		return true, fmt.Errorf("button report: %w", err)
	}
	return true, nil
}
