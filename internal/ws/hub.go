package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-inventory-tracker/internal/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

const broadcastBuffer = 256

// Client is the part of a websocket connection the hub needs
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans committed inventory events out to every connected client
type Hub struct {
	clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        zerolog.Logger

	// done is closed when Run returns; sends to Register/Unregister must not outlive it
	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, broadcastBuffer),
		log:        log.With().Str("component", "ws").Logger(),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug().Int("clients", h.ClientCount()).Msg("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish implements service.Notifier. A full buffer drops the event rather than
// stalling the request that committed it.
func (h *Hub) Publish(event service.Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("encode ws event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn().Str("type", event.Type).Msg("ws broadcast buffer full, event dropped")
	}
}

// attach registers c unless the hub has stopped
func (h *Hub) attach(c Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// conn is a Client the hub also reads from to notice disconnects
type conn interface {
	Client
	ReadMessage() (messageType int, p []byte, err error)
}

// Serve keeps a websocket connection registered until the client goes away
func (h *Hub) Serve(c *websocket.Conn) {
	h.serve(c)
}

func (h *Hub) serve(c conn) {
	if !h.attach(c) {
		return
	}
	defer h.detach(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
