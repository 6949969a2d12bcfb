package ws

import (
	"encoding/json"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// encode builds an outbound event frame as JSON bytes
func (h *Hub) encode(event domain.EventName, data any) ([]byte, bool) {
	payload, err := json.Marshal(domain.OutboundFrame{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to encode event", "event", event, "error", err)
		return nil, false
	}
	return payload, true
}

// Emit sends an event to a single connection
func (h *Hub) Emit(connID string, event domain.EventName, data any) {
	payload, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[connID]; ok {
		h.send(client, payload)
	}
}

// EmitRoom sends an event to every connection in the room group
func (h *Hub) EmitRoom(room string, event domain.EventName, data any) {
	h.EmitRoomExcept(room, "", event, data)
}

// EmitRoomExcept sends an event to every connection in the room group but exceptConnID
func (h *Hub) EmitRoomExcept(room, exceptConnID string, event domain.EventName, data any) {
	payload, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, client := range h.groups[room] {
		if id == exceptConnID {
			continue
		}
		h.send(client, payload)
	}
}

// ack answers one inbound frame
func (h *Hub) ack(client *Client, id int64, err error) {
	payload, mErr := json.Marshal(domain.AckFrame{
		Event: domain.EventAck,
		Ack:   id,
		Error: domain.AckText(err),
	})
	if mErr != nil {
		h.logger.Error("failed to encode ack", "error", mErr)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[client.ID]; ok {
		h.send(client, payload)
	}
}

// send queues payload without blocking the hub.
// Caller must hold at least RLock.
func (h *Hub) send(client *Client, payload []byte) {
	if !client.Send(payload) {
		h.logger.Warn("dropping frame, send buffer full", "conn_id", client.ID)
	}
}
