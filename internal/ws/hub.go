// Package ws fans store events out to websocket clients.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType represents the type of a hub payload.
type MessageType string

const (
	MessageActivityChanged     MessageType = "ActivityChanged"
	MessagePressReleaseChanged MessageType = "PressReleaseChanged"
	MessageContactChanged      MessageType = "ContactChanged"
	MessageChannelChanged      MessageType = "ChannelChanged"
	MessageChannelMessage      MessageType = "ChannelMessageCreated"
	MessageSessionChanged      MessageType = "SessionChanged"
	MessageStateReset          MessageType = "StateReset"
)

// BroadcastMessage packages a payload for delivery. An empty Topic reaches
// every client; otherwise only subscribers of Topic receive it.
type BroadcastMessage struct {
	Topic   string
	Payload []byte
}

// Hub manages active clients and topic-scoped broadcasts.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub builds a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if message.Topic != "" && !client.IsSubscribed(message.Topic) {
					continue
				}
				select {
				case client.Send <- message.Payload:
				default:
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Stop ends the hub loop and closes every client's send channel.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Broadcast sends a payload to every client.
func (h *Hub) Broadcast(payload []byte) {
	h.send(BroadcastMessage{Payload: payload})
}

// BroadcastTopic sends a payload to the subscribers of topic.
func (h *Hub) BroadcastTopic(topic string, payload []byte) {
	h.send(BroadcastMessage{Topic: topic, Payload: payload})
}

func (h *Hub) send(message BroadcastMessage) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Client represents a websocket connection.
type Client struct {
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan []byte
	mu     sync.RWMutex
	topics map[string]bool
}

// NewClient returns a client ready for registration.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan []byte, 256),
		topics: make(map[string]bool),
	}
}

// SubscribeTopic adds topic to the client's subscriptions.
func (c *Client) SubscribeTopic(topic string) {
	c.mu.Lock()
	c.topics[topic] = true
	c.mu.Unlock()
}

// UnsubscribeTopic removes topic from the client's subscriptions.
func (c *Client) UnsubscribeTopic(topic string) {
	c.mu.Lock()
	delete(c.topics, topic)
	c.mu.Unlock()
}

// IsSubscribed reports whether the client follows topic.
func (c *Client) IsSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topics[topic]
}
