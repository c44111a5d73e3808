package transport

import "sync"

// queue is the bounded inbound buffer shared by ports that read from a
// blocking source on their own goroutine.
type queue struct {
	in        chan byte
	done      chan struct{}
	closeOnce sync.Once
}

func (q *queue) init(size int) {
	if size <= 0 {
		size = DefaultBuffer
	}
	q.in = make(chan byte, size)
	q.done = make(chan struct{})
}

func (q *queue) Buffered() int { return len(q.in) }

func (q *queue) ReadByte() (byte, error) {
	select {
	case b := <-q.in:
		return b, nil
	default:
	}
	select {
	case <-q.done:
		return 0, ErrClosed
	default:
		return 0, ErrNoData
	}
}

// push blocks while the buffer is full; it gives up once the queue is closed.
func (q *queue) push(p []byte) bool {
	for _, b := range p {
		select {
		case q.in <- b:
		case <-q.done:
			return false
		}
	}
	return true
}

func (q *queue) closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *queue) shut() bool {
	first := false
	q.closeOnce.Do(func() {
		close(q.done)
		first = true
	})
	return first
}
