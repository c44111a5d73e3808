package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"
)

// Stream adapts a blocking reader/writer pair (a serial device, stdio) to Port.
// One goroutine reads into the inbound queue; writes go straight through.
type Stream struct {
	queue
	r      io.Reader
	w      io.Writer
	c      io.Closer
	name   string
	idleOK bool // treat (0, io.EOF) as a read timeout rather than end of stream

	wg   sync.WaitGroup
	mu   sync.Mutex
	rerr error
}

// NewStream starts reading r in the background. c, if non-nil, is closed by Close.
func NewStream(name string, r io.Reader, w io.Writer, c io.Closer, buffer int) *Stream {
	s := &Stream{r: r, w: w, c: c, name: name}
	s.start(buffer)
	return s
}

// SerialConfig describes the serial device carrying the radio link.
type SerialConfig struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
	Buffer      int
}

// OpenSerial opens a serial device (e.g. a BLE UART bridge on /dev/rfcomm0).
func OpenSerial(cfg SerialConfig) (*Stream, error) {
	if cfg.Baud <= 0 {
		cfg.Baud = 9600
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 100 * time.Millisecond
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	s := &Stream{r: p, w: p, c: p, name: cfg.Device, idleOK: true}
	s.start(cfg.Buffer)
	return s, nil
}

func (s *Stream) start(buffer int) {
	s.init(buffer)
	s.wg.Add(1)
	go s.readLoop()
}

func (s *Stream) readLoop() {
	defer s.wg.Done()
	buf := make([]byte, 64)
	for {
		n, err := s.r.Read(buf)
		if n > 0 && !s.push(buf[:n]) {
			return
		}
		if err == nil {
			continue
		}
		if s.closed() {
			return
		}
		if s.idleOK && n == 0 && errors.Is(err, io.EOF) {
			continue
		}
		s.mu.Lock()
		s.rerr = err
		s.mu.Unlock()
		if !errors.Is(err, io.EOF) {
			log.Warn().Err(err).Str("port", s.name).Msg("transport read failed")
		}
		return
	}
}

// Err returns the error that stopped the reader, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rerr
}

func (s *Stream) WriteByte(c byte) error {
	if s.closed() {
		return ErrClosed
	}
	if _, err := s.w.Write([]byte{c}); err != nil {
		return fmt.Errorf("%s write: %w", s.name, err)
	}
	return nil
}

// Close stops the reader and closes the underlying device. Without a closer
// (stdin) a reader blocked in Read is left to exit with the process.
func (s *Stream) Close() error {
	if !s.shut() || s.c == nil {
		return nil
	}
	err := s.c.Close()
	s.wg.Wait()
	return err
}
