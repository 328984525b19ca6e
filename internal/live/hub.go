// Package live pushes the services list to open admin pages over websockets
// whenever the store commits a change.
package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

const writeWait = 5 * time.Second

// Message is the only frame the hub sends.
type Message struct {
	Services []models.Service `json:"services"`
}

type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *Client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(v)
}

func (c *Client) sendLocked(v any) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub tracks connected clients and fans out service list snapshots.
// Snapshots are read and clients registered under mu, so a client never
// receives a list older than one it was already sent.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]bool
	updates  chan struct{}
	snapshot func() []models.Service
	log      logrus.FieldLogger
}

// NewHub creates a hub; snapshot provides the list sent to new clients.
func NewHub(snapshot func() []models.Service, log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		updates:  make(chan struct{}, 1),
		snapshot: snapshot,
		log:      log,
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS handles GET /ws/servicos
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	client := &Client{conn: conn}
	h.mu.Lock()
	items := h.snapshot()
	h.clients[client] = true
	// Held until the snapshot is out so a broadcast cannot overtake it.
	client.mu.Lock()
	h.mu.Unlock()
	err = client.sendLocked(Message{Services: items})
	client.mu.Unlock()

	// Clean up on close
	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	if err != nil {
		return
	}
	// Incoming frames are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish schedules a broadcast without blocking. It matches the store's
// Observer; the list sent is read fresh from snapshot, and pending
// notifications coalesce into one.
func (h *Hub) Publish([]models.Service) {
	select {
	case h.updates <- struct{}{}:
	default:
	}
}

// Run broadcasts published lists until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-h.updates:
			h.broadcast()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcast() {
	h.mu.RLock()
	msg := Message{Services: h.snapshot()}
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		if err := c.send(msg); err != nil {
			h.log.WithError(err).Debug("websocket send failed")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}
