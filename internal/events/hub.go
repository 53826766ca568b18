// Package events provides a lightweight broadcast hub that streams
// alert/incident/notification events to dashboard clients over WebSocket.
package events

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventType identifies what happened
type EventType string

const (
	EventAlertCreated        EventType = "alert_created"
	EventAlertAcknowledged   EventType = "alert_acknowledged"
	EventAlertResolved       EventType = "alert_resolved"
	EventIncidentCreated     EventType = "incident_created"
	EventIncidentAssigned    EventType = "incident_assigned"
	EventIncidentResolved    EventType = "incident_resolved"
	EventNotificationUpdated EventType = "notification_updated"
)

// Event is one message on the feed
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher is the write side of the hub. The dispatcher and services only
// need Publish, so they take this interface rather than the full hub.
type Publisher interface {
	Publish(eventType EventType, payload interface{})
}

// Hub fans events out to connected WebSocket clients. Slow or dead clients
// are dropped rather than blocking the publisher.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	clients  map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub creates an event hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // dashboard origin enforcement happens at the CORS layer
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish broadcasts an event to all connected clients
func (h *Hub) Publish(eventType EventType, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- event:
		default:
			// Client is not keeping up; it will be dropped by its writer
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the connection and streams events until the
// client disconnects
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("events: WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan Event, 64),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("events: client connected from %s (%d total)", r.RemoteAddr, h.ClientCount())

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			h.drop(c)
			return
		}
	}
}

// readLoop discards inbound frames; the feed is one-way. It exists to
// notice the close handshake.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}
