package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// demoChannel collects clients with no owner (demo mode).
const demoChannel uint = 0

// sendBuffer bounds how far a slow client may fall behind before frames are
// dropped.
const sendBuffer = 16

const pingInterval = 25 * time.Second

// WSClient owns its connection through a single writer goroutine; broadcasts
// are handed off on the send channel so no two goroutines ever call
// WriteMessage on the same conn.
type WSClient struct {
	OwnerID uint
	Conn    *websocket.Conn
	send    chan []byte
}

func NewWSClient(ownerID uint, conn *websocket.Conn) *WSClient {
	return &WSClient{OwnerID: ownerID, Conn: conn, send: make(chan []byte, sendBuffer)}
}

// writeLoop is the sole writer on the connection: it drains the send channel
// and emits keepalive pings. On a write error it closes the conn, which ends
// the controller's read loop and triggers Unregister.
func (c *WSClient) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.Conn.Close()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RealtimeHub fans stored readings out to connected websocket clients,
// grouped by owner. Delivery is best-effort: a slow client's frames are
// dropped rather than blocking the broadcaster.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.OwnerID] == nil {
		h.clients[c.OwnerID] = make(map[*WSClient]struct{})
	}
	h.clients[c.OwnerID][c] = struct{}{}
	h.mu.Unlock()
	go c.writeLoop()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.OwnerID]; set != nil {
		if _, ok := set[c]; ok {
			delete(set, c)
			// Safe: broadcast only sends while holding the read lock, so
			// nobody can be mid-send on this channel here.
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.OwnerID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) BroadcastReading(ownerID *uint, view ReadingView) {
	h.broadcast(channelFor(ownerID), map[string]any{
		"kind":    "reading.created",
		"reading": view,
	})
}

func (h *RealtimeHub) BroadcastAlert(ownerID *uint, payload any) {
	h.broadcast(channelFor(ownerID), map[string]any{
		"kind":  "alert.created",
		"alert": payload,
	})
}

func (h *RealtimeHub) broadcast(channel uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[channel] {
		select {
		case c.send <- msg:
		default: // client is not keeping up, drop the frame
		}
	}
}

func channelFor(ownerID *uint) uint {
	if ownerID == nil {
		return demoChannel
	}
	return *ownerID
}
