package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one connected viewer. Email and Role come from the verified
// token presented at upgrade time and are authoritative for chat relay.
type Client struct {
	Conn  Conn
	Email string
	Role  string
}

// Hub is a single-process broadcast fan-out. Delivery is best-effort: no
// acknowledgment, no replay, and a viewer that connects after an event was
// emitted must catch up with an explicit re-fetch.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			log.Printf("WS client connected: %s", client.Email)

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for client := range h.Clients {
				if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Emit marshals an event envelope and queues it for fan-out. Marshal
// failures are logged and dropped; the bus never fails a request.
func (h *Hub) Emit(event string, data interface{}) {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws: drop %s event: %v", event, err)
		return
	}
	h.Broadcast <- msg
}

// RelayChat stamps the sender identity from the authenticated session and
// broadcasts the message to every viewer. The hub performs no access control
// on chat content: receiving clients discard messages addressed to others.
// Delivery is best-effort; messages that miss a viewer are not retried.
func (h *Hub) RelayChat(sender *Client, recipientEmail, text string) {
	h.Emit(EventChatMessage, model.ChatMessage{
		SenderEmail:    sender.Email,
		SenderRole:     sender.Role,
		RecipientEmail: recipientEmail,
		Text:           text,
		Timestamp:      time.Now().UTC(),
	})
}
