// Package sse pushes live updates to connected browsers via Server-Sent
// Events. One broadcaster exists per session; sends carry a timeout so a
// stalled client never blocks a game transition.
package sse

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Message is one event sent to a client
type Message struct {
	Event string // Event type (e.g. "phase-update", "nav-redirect")
	Data  string // HTML content or data to send
}

// Broadcaster fans one session's updates out to its connected clients
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Message]string // channel -> clientID
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Message]string),
	}
}

// AddClient registers a client channel
func (b *Broadcaster) AddClient(client chan Message, clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = clientID
}

// RemoveClient unregisters a client channel. The channel is never closed:
// Broadcast may still hold a snapshot of it from before the removal, so the
// reader exits on its request context instead.
func (b *Broadcaster) RemoveClient(client chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, client)
}

// ClientCount returns the number of connected clients
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast sends a message to all connected clients
func (b *Broadcaster) Broadcast(event, data string) {
	b.mu.RLock()
	// Collect all client channels while holding the lock
	clients := make([]chan Message, 0, len(b.clients))
	for client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	if debug {
		log.Printf("sse: broadcast event=%s to %d clients", event, len(clients))
	}

	// Send messages WITHOUT holding the lock
	msg := Message{Event: event, Data: data}
	for _, client := range clients {
		select {
		case client <- msg:
		case <-time.After(time.Duration(game.SSETimeoutSeconds) * time.Second):
			if debug {
				log.Printf("sse: timeout sending to client")
			}
		}
	}
}

// Hub hands out one broadcaster per session code
type Hub struct {
	mu           sync.Mutex
	broadcasters map[string]*Broadcaster
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		broadcasters: make(map[string]*Broadcaster),
	}
}

// For returns the broadcaster for a session, creating it if missing
func (h *Hub) For(code string) *Broadcaster {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.broadcasters[code]
	if !ok {
		b = NewBroadcaster()
		h.broadcasters[code] = b
	}
	return b
}

// Drop discards a session's broadcaster. Remaining clients get a redirect
// home; their streams end when the browsers navigate away.
func (h *Hub) Drop(code string) {
	h.mu.Lock()
	b, ok := h.broadcasters[code]
	delete(h.broadcasters, code)
	h.mu.Unlock()

	if !ok {
		return
	}
	b.Broadcast(EventNavRedirect, "/")
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.clients)
}
