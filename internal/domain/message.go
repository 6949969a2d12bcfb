package domain

import (
	"encoding/json"
	"time"
)

// EventName identifies an inbound or outbound protocol event
type EventName string

const (
	// Inbound
	EventJoin         EventName = "join"
	EventSendMessage  EventName = "sendMessage"
	EventSendLocation EventName = "sendLocation"

	// Outbound
	EventMessage         EventName = "message"
	EventLocationMessage EventName = "locationMessage"
	EventRoomData        EventName = "roomData"
	EventAck             EventName = "ack"
)

// Message is a chat or location message. It is built per emission and never stored.
type Message struct {
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// JoinPayload is the payload of a join event
type JoinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// LocationPayload is the payload of a sendLocation event
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RoomData is the roster broadcast on every membership change
type RoomData struct {
	Room  string `json:"room"`
	Users []User `json:"users"`
}

// RoomSummary describes one active room for the lobby
type RoomSummary struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// InboundFrame is a single client to server websocket frame
type InboundFrame struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ack   int64           `json:"ack"`
}

// OutboundFrame is a single server to client event frame
type OutboundFrame struct {
	Event EventName `json:"event"`
	Data  any       `json:"data,omitempty"`
}

// AckFrame answers exactly one InboundFrame
type AckFrame struct {
	Event EventName `json:"event"`
	Ack   int64     `json:"ack"`
	Error string    `json:"error,omitempty"`
}
