package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// EventHandler receives inbound events and disconnect notifications.
// Both are called from the hub goroutine, one at a time.
type EventHandler interface {
	// HandleEvent returns the event's acknowledgment; nil acknowledges success
	HandleEvent(connID string, event domain.EventName, data json.RawMessage) error
	HandleDisconnect(connID string)
}

type inbound struct {
	client *Client
	frame  domain.InboundFrame
}

// Hub maintains the set of active clients and their room groups.
// All inbound events are handled to completion on the Run goroutine.
type Hub struct {
	mu     sync.RWMutex
	logger *slog.Logger

	clients    map[string]*Client
	groups     map[string]map[string]*Client // room -> conn id -> client
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	done       chan struct{}
	handler    EventHandler

	eventRate      rate.Limit
	eventBurst     int
	maxMessageSize int64
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:         logger,
		clients:        make(map[string]*Client),
		groups:         make(map[string]map[string]*Client),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		inbound:        make(chan inbound),
		done:           make(chan struct{}),
		eventRate:      domain.DefaultRateLimitEvents,
		eventBurst:     domain.DefaultEventBurst,
		maxMessageSize: domain.MaxMessageSize,
	}
}

// SetHandler sets the protocol handler. Must be called before Run.
func (h *Hub) SetHandler(handler EventHandler) {
	h.handler = handler
}

// SetEventLimit sets the per connection inbound event rate for new clients
func (h *Hub) SetEventLimit(r rate.Limit, burst int) {
	h.eventRate = r
	h.eventBurst = burst
}

// SetMaxMessageSize sets the read limit for new clients
func (h *Hub) SetMaxMessageSize(n int64) {
	h.maxMessageSize = n
}

// Done is closed once Run has returned and every client was disconnected
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run starts the hub's main event loop. It returns when ctx is cancelled,
// after closing every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client connected", "conn_id", client.ID, "clients", count)

		case client := <-h.unregister:
			// Double unregister is a no-op, so disconnect fires once
			if h.remove(client) {
				h.disconnect(client)
			}

		case in := <-h.inbound:
			h.handle(in)
		}
	}
}

// handle runs one inbound event and acknowledges it
func (h *Hub) handle(in inbound) {
	h.mu.RLock()
	_, ok := h.clients[in.client.ID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if in.client.limiter != nil && !in.client.limiter.Allow() {
		h.ack(in.client, in.frame.Ack, domain.ErrRateLimited)
		return
	}

	var err error
	if h.handler == nil {
		err = domain.ErrUnknownEvent
	} else {
		err = h.handler.HandleEvent(in.client.ID, in.frame.Event, in.frame.Data)
	}
	h.ack(in.client, in.frame.Ack, err)
}

// remove deletes client from the hub and its group and closes its send queue.
// It reports false if the client was already removed.
func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return false
	}

	delete(h.clients, client.ID)
	h.leaveGroup(client)
	close(client.send)
	return true
}

func (h *Hub) disconnect(client *Client) {
	h.logger.Debug("client disconnected", "conn_id", client.ID)
	if h.handler != nil {
		h.handler.HandleDisconnect(client.ID)
	}
}

// shutdown closes every client; each still fires its disconnect once
func (h *Hub) shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if h.remove(c) {
			h.disconnect(c)
		}
	}
	h.logger.Info("hub stopped", "closed_clients", len(clients))
}
