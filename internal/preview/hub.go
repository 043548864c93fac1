// Package preview streams frames to browsers over websocket.
package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog/log"
)

const writeWait = 200 * time.Millisecond

// Topology tells clients how to lay out the bytes of a frame.
type Topology struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
	Rotation int    `json:"rotation"`
	Driver   string `json:"driver,omitempty"`
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

// Hub is an io.Writer: every Write is broadcast as one frame to all
// connected clients. Writes never fail or block on a client; a client still
// sending the previous frame skips this one.
type Hub struct {
	// Timer, when set, is reported by /health.
	Timer metrics.Timer

	mu      sync.Mutex
	top     Topology
	clients map[*websocket.Conn]*client
	frameID uint64
	start   time.Time
	up      websocket.Upgrader
}

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(b []byte) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Debug().Err(err).Msg("write frame")
	}
}

func NewHub(top Topology) *Hub {
	return &Hub{
		top:     top,
		clients: map[*websocket.Conn]*client{},
		start:   time.Now(),
		up:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (h *Hub) Write(p []byte) (int, error) {
	h.mu.Lock()
	h.frameID++
	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: h.frameID, RGB: p})
	clients := h.snapshot()
	h.mu.Unlock()
	if err != nil {
		return 0, err
	}
	for _, c := range clients {
		if !c.mu.TryLock() {
			continue
		}
		go func(c *client) {
			defer c.mu.Unlock()
			c.send(b)
		}(c)
	}
	return len(p), nil
}

// SetTopology updates the layout and pushes it to every client. Unlike
// frames, topology is never skipped.
func (h *Hub) SetTopology(t Topology) {
	h.mu.Lock()
	h.top = t
	clients := h.snapshot()
	h.mu.Unlock()
	b, _ := json.Marshal(t)
	for _, c := range clients {
		c.mu.Lock()
		c.send(b)
		c.mu.Unlock()
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// must hold h.mu
func (h *Hub) snapshot() []*client {
	out := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// topology goes out before the client joins the broadcast set, so it is
	// always the first message
	c := &client{conn: conn}
	h.mu.Lock()
	b, _ := json.Marshal(h.top)
	c.send(b)
	h.clients[conn] = c
	h.mu.Unlock()
	log.Debug().Str("remote", r.RemoteAddr).Msg("preview client connected")

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.start).Seconds(),
		"count":    h.top.Width * h.top.Height,
		"clients":  len(h.clients),
	}
	h.mu.Unlock()
	if h.Timer != nil {
		s := h.Timer.Snapshot()
		resp["frames"] = s.Count()
		resp["frame_ms_mean"] = s.Mean() / float64(time.Millisecond)
		resp["frame_ms_p99"] = s.Percentile(0.99) / float64(time.Millisecond)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Routes serves /ws and /health.
func (h *Hub) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/health", h.HandleHealth)
	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
