package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcastrip/internal/app"
	"github.com/coreman2200/arcastrip/internal/config"
	diag "github.com/coreman2200/arcastrip/internal/diagnostics"
)

const writeTimeout = 200 * time.Millisecond

var errNoController = errors.New("no controller attached")

// ControlSink accepts runtime controls; *app.Controller fits.
type ControlSink interface {
	Submit(ctl app.Control) error
}

// Monitor mirrors the controller to browser clients: frames on /ws,
// diagnostics on /diag, controls on /control and a JSON status on /health.
// Publishing never blocks the control loop; a goroutine in Run does the sends.
type Monitor struct {
	mu        sync.RWMutex
	status    app.Status
	rgb       []byte
	startTime time.Time
	driver    string

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	frames chan struct{}
	diags  chan diag.Diagnostic

	Control ControlSink
	// Config and ConfigPath, when both set, persist accepted controls.
	Config     *config.Config
	ConfigPath string
	cfgMu      sync.Mutex
}

func NewMonitor(driver string) *Monitor {
	return &Monitor{
		driver:      driver,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		frames:      make(chan struct{}, 1),
		diags:       make(chan diag.Diagnostic, 64),
	}
}

// SetDriver names the strip driver reported on /health.
func (m *Monitor) SetDriver(name string) {
	m.mu.Lock()
	m.driver = name
	m.mu.Unlock()
}

// Frame stores the latest frame and status and wakes the broadcaster.
func (m *Monitor) Frame(s app.Status, rgb []byte) {
	m.mu.Lock()
	m.status = s
	m.rgb = append(m.rgb[:0], rgb...)
	m.mu.Unlock()
	select {
	case m.frames <- struct{}{}:
	default:
	}
}

// Diagnostic queues d for /diag clients, dropping it if the queue is full.
func (m *Monitor) Diagnostic(d diag.Diagnostic) {
	select {
	case m.diags <- d:
	default:
		log.Debug().Str("code", d.Code).Msg("diagnostic dropped")
	}
}

// Run broadcasts until ctx is done, then disconnects every client.
func (m *Monitor) Run(ctx context.Context) {
	defer m.closeClients()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.frames:
			m.broadcastFrame()
		case d := <-m.diags:
			m.pushDiag(d)
		}
	}
}

// Routes mounts the monitor endpoints. uart, if non-nil, is served on /uart.
func (m *Monitor) Routes(uart http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleFramesWS)
	mux.HandleFunc("/diag", m.HandleDiagWS)
	mux.HandleFunc("/control", m.HandleControlWS)
	mux.HandleFunc("/health", m.HandleHealth)
	if uart != nil {
		mux.Handle("/uart", uart)
	}
	return withCORS(mux)
}

func (m *Monitor) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrade(w, r)
	if err != nil {
		return
	}
	// status goes out before the broadcaster can see conn
	m.sendStatus(conn)
	m.mu.Lock()
	m.clients[conn] = true
	m.mu.Unlock()
	go m.drain(conn, m.clients)
}

func (m *Monitor) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrade(w, r)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.diagClients[conn] = true
	m.mu.Unlock()
	go m.drain(conn, m.diagClients)
}

type controlReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (m *Monitor) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrade(w, r)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ctl app.Control
		reply := controlReply{OK: true}
		if err := json.Unmarshal(data, &ctl); err != nil {
			reply = controlReply{Error: err.Error()}
		} else if err := m.submit(ctl); err != nil {
			reply = controlReply{Error: err.Error()}
		}
		b, _ := json.Marshal(reply)
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (m *Monitor) HandleHealth(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := map[string]any{
		"uptime_s": time.Since(m.startTime).Seconds(),
		"driver":   m.driver,
		"status":   m.status,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (m *Monitor) submit(ctl app.Control) error {
	if m.Control == nil {
		return errNoController
	}
	if err := m.Control.Submit(ctl); err != nil {
		return err
	}
	m.saveConfig(ctl)
	return nil
}

// saveConfig writes ctl through to the config file if the result still validates.
func (m *Monitor) saveConfig(ctl app.Control) {
	if m.Config == nil || m.ConfigPath == "" {
		return
	}
	// cfgMu orders saves; m.mu stays free for the control loop
	m.cfgMu.Lock()
	defer m.cfgMu.Unlock()
	next := *m.Config
	if ctl.Palette != nil {
		next.Palette = *ctl.Palette
	}
	if ctl.Blend != nil {
		next.Blend = *ctl.Blend
	}
	if ctl.Brightness != nil {
		next.Brightness = *ctl.Brightness
	}
	if ctl.Step != nil {
		next.Step = *ctl.Step
	}
	if ctl.Rate != nil {
		next.UpdatesPerSecond = *ctl.Rate
	}
	if ctl.Mode != nil {
		next.Mode = *ctl.Mode
	}
	if err := next.Validate(); err != nil {
		return
	}
	*m.Config = next
	if err := config.Save(m.ConfigPath, m.Config); err != nil {
		log.Warn().Err(err).Str("path", m.ConfigPath).Msg("config save failed")
	}
}

func (m *Monitor) sendStatus(conn *websocket.Conn) {
	m.mu.RLock()
	b, _ := json.Marshal(map[string]any{"driver": m.driver, "status": m.status})
	m.mu.RUnlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (m *Monitor) broadcastFrame() {
	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	m.mu.RLock()
	if len(m.clients) == 0 {
		m.mu.RUnlock()
		return
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: m.status.FrameID, RGB: m.rgb})
	conns := snapshot(m.clients)
	m.mu.RUnlock()

	m.send(conns, m.clients, b)
}

func (m *Monitor) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	m.mu.RLock()
	conns := snapshot(m.diagClients)
	m.mu.RUnlock()

	m.send(conns, m.diagClients, b)
}

// send writes b to every conn without holding m.mu. A conn whose write fails
// is closed and removed from set.
func (m *Monitor) send(conns []*websocket.Conn, set map[*websocket.Conn]bool, b []byte) {
	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Str("remote", c.RemoteAddr().String()).Msg("dropping monitor client")
			m.mu.Lock()
			delete(set, c)
			m.mu.Unlock()
			_ = c.Close()
		}
	}
}

func snapshot(set map[*websocket.Conn]bool) []*websocket.Conn {
	out := make([]*websocket.Conn, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// drain reads until the client goes away, then forgets it.
func (m *Monitor) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		m.mu.Lock()
		delete(set, conn)
		m.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Monitor) closeClients() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for c := range m.clients {
		_ = c.Close()
	}
	for c := range m.diagClients {
		_ = c.Close()
	}
}

func upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return up.Upgrade(w, r, nil)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
