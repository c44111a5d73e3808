package led

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// Freq is the SPI clock nrzled needs: three SPI bits per NRZ bit gives the
// 800kHz WS2812 data rate.
const Freq = 2500 * physic.KiloHertz

// NRZ drives a WS281x strip by NRZ-encoding frames onto a SPI port.
type NRZ struct {
	mu    sync.Mutex
	dev   *nrzled.Dev
	port  io.Closer
	count int
	order Order
	buf   []byte
}

// OpenNRZ opens a SPI port by name ("" for the first one) and prepares a strip of count pixels.
func OpenNRZ(spiDev string, count int, colorOrder string) (*NRZ, error) {
	p, err := spireg.Open(spiDev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", spiDev, err)
	}
	n, err := NewNRZ(p, count, colorOrder)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	n.port = p
	return n, nil
}

// NewNRZ wraps an already open port. The port is not closed by Close.
func NewNRZ(p spi.Port, count int, colorOrder string) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	order, err := ParseOrder(colorOrder)
	if err != nil {
		return nil, err
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: count, Channels: 3, Freq: Freq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d, count: count, order: order, buf: make([]byte, count*3)}, nil
}

func (n *NRZ) String() string { return n.dev.String() }

// Write takes len(rgb)==3*count and sends it in the strip's color order.
func (n *NRZ) Write(rgb []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.dev == nil {
		return fmt.Errorf("nrz strip closed")
	}
	if len(rgb) != n.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), n.count)
	}
	n.order.Apply(n.buf, rgb)
	if _, err := n.dev.Write(n.buf); err != nil {
		return fmt.Errorf("nrz write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev == nil {
		return nil
	}
	err := n.dev.Halt()
	n.dev = nil
	if n.port != nil {
		if cerr := n.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
