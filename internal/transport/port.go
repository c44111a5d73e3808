package transport

import "errors"

var (
	// ErrNoData is returned by ReadByte when nothing is buffered.
	ErrNoData = errors.New("no data available")
	ErrClosed = errors.New("transport closed")
	// ErrNoPeer is returned by writes while no remote peer is attached.
	ErrNoPeer = errors.New("no peer connected")
)

// DefaultBuffer is the inbound byte capacity of pump-based ports.
const DefaultBuffer = 256

// Port is a byte link to the remote peer. Reads never block: callers check
// Buffered first, and ReadByte returns ErrNoData when empty.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	WriteByte(c byte) error
	Close() error
}
