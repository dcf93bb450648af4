package events

import (
	"encoding/json"
	"sync"

	"taskapi/internal/models"

	"github.com/gofiber/websocket/v2"
)

// Event names broadcast on the task feed.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// Event is the wire format pushed to websocket clients whenever a task
// mutates. Deletions carry only the id.
type Event struct {
	Type   string       `json:"event"`
	Task   *models.Task `json:"task,omitempty"`
	TaskID int          `json:"taskId,omitempty"`
}

// Client wraps a WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Mu   sync.Mutex
}

// Hub fans task events out to connected clients.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Default is the process-wide hub; main runs it, handlers publish to it.
var Default = NewHub()

// Run drives the register/unregister/broadcast loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}

// Publish queues an event for broadcast. Events are dropped rather than
// blocking the request when the hub is saturated or not running.
func Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	select {
	case Default.Broadcast <- payload:
	default:
	}
}
