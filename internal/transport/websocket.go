package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsWriteTimeout = 200 * time.Millisecond

// WebSocket carries the byte link over a websocket, one binary message per
// write. As a server it serves the link on an HTTP route and keeps the most
// recent peer; as a client it dials a single peer.
type WebSocket struct {
	queue
	up websocket.Upgrader

	mu   sync.Mutex
	conn *websocket.Conn
	wg   sync.WaitGroup
}

func NewWebSocket(buffer int) *WebSocket {
	w := &WebSocket{up: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}}
	w.init(buffer)
	return w
}

// DialWebSocket connects to a peer serving the link at url.
func DialWebSocket(ctx context.Context, url string, buffer int) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	w := NewWebSocket(buffer)
	w.attach(conn)
	return w, nil
}

// ServeHTTP upgrades the request and makes it the active peer, dropping any
// previous one.
func (w *WebSocket) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if w.closed() {
		http.Error(rw, "link closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := w.up.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	if w.attach(conn) {
		log.Info().Str("remote", r.RemoteAddr).Msg("link peer connected")
	}
}

// attach makes conn the active peer. It refuses, closing conn, once the link
// is closed; the check and wg.Add share w.mu with Close.
func (w *WebSocket) attach(conn *websocket.Conn) bool {
	w.mu.Lock()
	if w.closed() {
		w.mu.Unlock()
		_ = conn.Close()
		return false
	}
	if w.conn != nil {
		_ = w.conn.Close()
	}
	w.conn = conn
	w.wg.Add(1)
	w.mu.Unlock()

	go w.readLoop(conn)
	return true
}

func (w *WebSocket) readLoop(conn *websocket.Conn) {
	defer w.wg.Done()
	defer w.detach(conn)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if !w.push(data) {
			return
		}
	}
}

func (w *WebSocket) detach(conn *websocket.Conn) {
	w.mu.Lock()
	if w.conn == conn {
		w.conn = nil
	}
	w.mu.Unlock()
	_ = conn.Close()
}

// Connected reports whether a peer is attached.
func (w *WebSocket) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn != nil
}

func (w *WebSocket) WriteByte(c byte) error {
	if w.closed() {
		return ErrClosed
	}
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return ErrNoPeer
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{c}); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (w *WebSocket) Close() error {
	if !w.shut() {
		return nil
	}
	w.mu.Lock()
	if w.conn != nil {
		_ = w.conn.Close()
	}
	w.mu.Unlock()
	w.wg.Wait()
	return nil
}
