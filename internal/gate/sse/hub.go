package sse

import (
	"fmt"
	"log"
	"sync"
)

// Event represents a Server-Sent Event
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client represents a connected SSE client
type Client struct {
	ID         string
	UserID     string
	Department string
	Events     chan Event
}

// Hub manages all SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// GlobalHub is the singleton SSE Hub instance
var GlobalHub = NewHub()

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("[SSE] Client registered: id=%s user=%s (total: %d)", client.ID, client.UserID, len(h.clients))
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		log.Printf("[SSE] Client unregistered: id=%s (total: %d)", clientID, len(h.clients))
	}
}

// Broadcast sends an event to all clients; clients scoped to a department
// only receive events for that department (empty department = facility-wide).
func (h *Hub) Broadcast(department string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.Department != "" && department != "" && client.Department != department {
			continue
		}
		select {
		case client.Events <- event:
		default:
			log.Printf("[SSE] Client %s buffer full, skipping event", client.ID)
		}
	}
}

// PublishRequestUpdate notifies dashboards of a request transition.
func PublishRequestUpdate(department, requestID, action string) {
	data := fmt.Sprintf(`{"department":"%s","request_id":"%s","action":"%s"}`, department, requestID, action)
	GlobalHub.Broadcast(department, Event{
		EventType: "request_update",
		Data:      data,
	})
}

// PublishEntryUpdate notifies dashboards of an entry/exit log change.
func PublishEntryUpdate(department, requestID, logID, action string) {
	data := fmt.Sprintf(`{"department":"%s","request_id":"%s","log_id":"%s","action":"%s"}`, department, requestID, logID, action)
	GlobalHub.Broadcast(department, Event{
		EventType: "entry_update",
		Data:      data,
	})
}
