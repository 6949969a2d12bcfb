package ws

import (
	"errors"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// ErrHubClosed is returned when registering with a stopped hub
var ErrHubClosed = errors.New("hub closed")

// Register adds a client to the hub. It blocks until the hub accepted it.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// Unregister removes a client from the hub and fires its disconnect
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// dispatch hands one inbound frame to the hub goroutine.
// It returns false once the hub has stopped.
func (h *Hub) dispatch(c *Client, frame domain.InboundFrame) bool {
	select {
	case h.inbound <- inbound{client: c, frame: frame}:
		return true
	case <-h.done:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
