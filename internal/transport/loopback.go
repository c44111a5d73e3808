package transport

import "sync"

// Loopback is an in-memory Port. Feed queues inbound bytes; Written returns
// everything sent outbound.
type Loopback struct {
	mu     sync.Mutex
	in     []byte
	out    []byte
	closed bool
}

func NewLoopback() *Loopback { return &Loopback{} }

func (l *Loopback) Feed(p ...byte) {
	l.mu.Lock()
	l.in = append(l.in, p...)
	l.mu.Unlock()
}

func (l *Loopback) Buffered() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.in)
}

func (l *Loopback) ReadByte() (byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.in) == 0 {
		if l.closed {
			return 0, ErrClosed
		}
		return 0, ErrNoData
	}
	b := l.in[0]
	l.in = l.in[1:]
	return b, nil
}

func (l *Loopback) WriteByte(c byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.out = append(l.out, c)
	return nil
}

// Written returns a copy of the outbound bytes so far.
func (l *Loopback) Written() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]byte(nil), l.out...)
}

// Reset drops recorded outbound bytes.
func (l *Loopback) Reset() {
	l.mu.Lock()
	l.out = nil
	l.mu.Unlock()
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return nil
}
