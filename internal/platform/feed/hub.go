package feed

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// broadcastBuffer is how many frames may queue before the hub drops them.
const broadcastBuffer = 64

// Hub maintains the set of active spectators and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	last       []byte // Most recent frame, replayed to new spectators
	done       chan struct{}
	logger     *log.Logger
}

// NewHub creates a hub. Run must be started for frames to flow.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("Feed hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.last != nil {
				client.send <- h.last
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Spectator connected", "remote", client.remote, "spectators", n)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("Spectator disconnected", "remote", client.remote)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			h.last = message
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow spectator; drop it rather than stall the feed.
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("Dropping slow spectator", "remote", client.remote)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. It reports false when the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client if the hub is still running.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish encodes msg and queues it for every spectator. It never blocks the
// caller; frames are dropped when the queue is full.
func (h *Hub) Publish(msg Message) {
	payload, err := msg.Encode()
	if err != nil {
		h.logger.Error("Failed to encode feed message", "type", msg.Type, "err", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Debug("Feed queue full, frame dropped", "type", msg.Type)
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Queued returns the number of frames waiting for the broadcast loop.
func (h *Hub) Queued() int {
	return len(h.broadcast)
}
