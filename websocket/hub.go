package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected admin dashboard
type Client struct {
	Hub     *Hub
	AdminID string
	Conn    *websocket.Conn
	Send    chan []byte
	mu      sync.Mutex
}

// Hub manages the WebSocket connections of admin dashboards and fans alert
// notifications out to them
type Hub struct {
	// Registered clients by admin id
	Clients map[string]*Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Message is the envelope pushed to connected dashboards
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Broadcast:  make(chan *Message),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.AdminID] = client
			h.mu.Unlock()
			log.Printf("🔌 Admin dashboard connected: %s", client.AdminID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.AdminID]; ok {
				delete(h.Clients, client.AdminID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Admin dashboard disconnected: %s", client.AdminID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// BroadcastAlert queues a high-priority alert payload for every connected
// admin dashboard
func (h *Hub) BroadcastAlert(alert any) {
	h.Broadcast <- &Message{
		Type:      "alert",
		Timestamp: time.Now(),
		Data:      alert,
	}
}

// broadcastMessage sends a message to all connected clients. Stalled
// clients are evicted here, so the full write lock is required.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.Clients, client.AdminID)
		}
	}
}

// ConnectedAdmins returns the ids of currently connected dashboards
func (h *Hub) ConnectedAdmins() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	admins := make([]string, 0, len(h.Clients))
	for adminID := range h.Clients {
		admins = append(admins, adminID)
	}
	return admins
}
