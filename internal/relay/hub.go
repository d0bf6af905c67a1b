// Package relay fans mouse hook events out to WebSocket observers.
package relay

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"mousehook/internal/hook"
	"mousehook/internal/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	// DefaultQueueSize is the number of events buffered between the hook
	// thread and the hub before events are dropped.
	DefaultQueueSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local observers only; the server binds to loopback by default
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub handles WebSocket connections and broadcasting
type Hub struct {
	version    string
	clients    map[*client]bool
	clientsMu  sync.RWMutex
	events     chan hook.MouseEvent
	register   chan *client
	unregister chan *client
	done       chan struct{}
	dropped    atomic.Uint64
}

type client struct {
	hub  *Hub
	id   string
	conn *websocket.Conn
	send chan []byte
	ip   string
}

// NewHub creates a hub buffering up to queueSize events
func NewHub(version string, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		version:    version,
		clients:    make(map[*client]bool),
		events:     make(chan hook.MouseEvent, queueSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Listener returns a hook listener that queues events for broadcast.
// It never blocks the hook thread; events are dropped when the queue is full.
func (h *Hub) Listener() hook.Listener {
	return func(ev hook.MouseEvent) {
		select {
		case h.events <- ev:
		default:
			h.dropped.Add(1)
		}
	}
}

// Dropped returns the number of events discarded because the queue was full
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// ClientCount returns the number of connected observers
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Run processes registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.clientsMu.Lock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.clientsMu.Unlock()
	}()

	for {
		select {
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.clientsMu.Unlock()
			log.Printf("Relay: Client %s registered from %s. Total clients: %d", c.id, c.ip, n)

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				log.Printf("Relay: Client %s unregistered. Total clients: %d", c.id, len(h.clients))
			}
			h.clientsMu.Unlock()

		case ev := <-h.events:
			h.broadcast(protocol.Message{
				Type:    protocol.TypeMouse,
				Payload: protocol.FromEvent(ev),
			})

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) broadcast(message protocol.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Relay: Failed to marshal broadcast message: %v", err)
		return
	}

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("Relay: Client %s too slow, disconnecting", c.id)
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Relay: Failed to upgrade connection: %v", err)
		return
	}

	c := &client{
		hub:  h,
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 256),
		ip:   r.RemoteAddr,
	}

	hello, _ := json.Marshal(protocol.Message{
		Type:    protocol.TypeHello,
		Payload: protocol.HelloPayload{ClientID: c.id, Version: h.version},
	})
	c.send <- hello

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so close frames and pongs are processed.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Relay: Read error from %s: %v", c.id, err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
