package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// Router is the pub-sub transport the chat protocol runs on.
// Emits never block; delivery to a slow connection may be dropped by the router.
type Router interface {
	Join(connID, room string)
	Emit(connID string, event domain.EventName, data any)
	EmitRoom(room string, event domain.EventName, data any)
	EmitRoomExcept(room, exceptConnID string, event domain.EventName, data any)
}

// ChatService implements the join/message/location/disconnect protocol
type ChatService struct {
	registry  *Registry
	router    Router
	filter    ProfanityChecker
	sanitizer Sanitizer
	logger    *slog.Logger
}

// NewChatService creates a ChatService writing to router
func NewChatService(registry *Registry, router Router, filter ProfanityChecker, sanitizer Sanitizer, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		registry:  registry,
		router:    router,
		filter:    filter,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// HandleEvent handles one inbound event to completion.
// The returned error is the event's acknowledgment; nil acknowledges success.
func (s *ChatService) HandleEvent(connID string, event domain.EventName, data json.RawMessage) error {
	switch event {
	case domain.EventJoin:
		return s.join(connID, data)
	case domain.EventSendMessage:
		return s.sendMessage(connID, data)
	case domain.EventSendLocation:
		return s.sendLocation(connID, data)
	default:
		return fmt.Errorf("event %q: %w", event, domain.ErrUnknownEvent)
	}
}

func (s *ChatService) join(connID string, data json.RawMessage) error {
	var payload domain.JoinPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("join: %w", domain.ErrBadPayload)
		}
	}

	user, err := s.registry.AddUser(connID, s.sanitizer.Sanitize(payload.Username), s.sanitizer.Sanitize(payload.Room))
	if err != nil {
		s.logger.Debug("join rejected", "conn_id", connID, "error", err)
		return err
	}

	s.router.Join(connID, user.Room)
	s.router.Emit(connID, domain.EventMessage, GenerateMessage(domain.SystemSender, domain.WelcomeText))
	s.router.EmitRoomExcept(user.Room, connID, domain.EventMessage,
		GenerateMessage(domain.SystemSender, user.Username+" has joined!"))
	s.emitRoomData(user.Room)

	s.logger.Info("user joined", "conn_id", connID, "username", user.Username, "room", user.Room)
	return nil
}

func (s *ChatService) sendMessage(connID string, data json.RawMessage) error {
	user, ok := s.registry.GetUser(connID)
	if !ok {
		return fmt.Errorf("send message from %s: %w", connID, domain.ErrUnknownUser)
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("send message: %w", domain.ErrBadPayload)
	}

	if s.filter.IsProfane(text) {
		s.logger.Debug("message rejected", "conn_id", connID, "room", user.Room)
		return domain.ErrProfanity
	}

	s.router.EmitRoom(user.Room, domain.EventMessage, GenerateMessage(user.Username, s.sanitizer.Sanitize(text)))
	return nil
}

func (s *ChatService) sendLocation(connID string, data json.RawMessage) error {
	user, ok := s.registry.GetUser(connID)
	if !ok {
		return fmt.Errorf("send location from %s: %w", connID, domain.ErrUnknownUser)
	}

	// Pointers so a missing coordinate is distinguishable from zero
	var coords struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &coords); err != nil || coords.Latitude == nil || coords.Longitude == nil {
		return fmt.Errorf("send location: %w", domain.ErrBadPayload)
	}
	if !IsValidCoordinate(*coords.Latitude, *coords.Longitude) {
		return fmt.Errorf("send location (%v,%v): %w", *coords.Latitude, *coords.Longitude, domain.ErrBadPayload)
	}

	s.router.EmitRoom(user.Room, domain.EventLocationMessage,
		GenerateLocationMessage(user.Username, MapsURL(*coords.Latitude, *coords.Longitude)))
	return nil
}

// HandleDisconnect removes the user for connID and notifies the rest of the room.
// Connections that never joined are ignored.
func (s *ChatService) HandleDisconnect(connID string) {
	user, ok := s.registry.RemoveUser(connID)
	if !ok {
		return
	}

	s.router.EmitRoom(user.Room, domain.EventMessage, GenerateMessage(domain.SystemSender, user.Username+" has left!"))
	s.emitRoomData(user.Room)

	s.logger.Info("user left", "conn_id", connID, "username", user.Username, "room", user.Room)
}

func (s *ChatService) emitRoomData(room string) {
	s.router.EmitRoom(room, domain.EventRoomData, domain.RoomData{
		Room:  room,
		Users: s.registry.GetUsersInRoom(room),
	})
}
