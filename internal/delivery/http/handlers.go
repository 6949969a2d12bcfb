package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mmuslimabdulj/goat-relay/internal/config"
	"github.com/mmuslimabdulj/goat-relay/internal/delivery/ws"
	"github.com/mmuslimabdulj/goat-relay/internal/domain"
	"github.com/mmuslimabdulj/goat-relay/internal/usecase"
	"github.com/mmuslimabdulj/goat-relay/internal/view"
)

type Handler struct {
	hub            *ws.Hub
	registry       *usecase.Registry
	logger         *slog.Logger
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

func NewHandler(hub *ws.Hub, registry *usecase.Registry, cfg *config.Config, logger *slog.Logger) *Handler {
	h := &Handler{
		hub:            hub,
		registry:       registry,
		logger:         logger,
		allowedOrigins: cfg.AllowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.isOriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

// isOriginAllowed checks if the origin is in the allowed list
func (h *Handler) isOriginAllowed(origin string) bool {
	// Empty origin is allowed (non-browser clients)
	if origin == "" {
		return true
	}

	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

// HandleLobby serves the lobby page listing active rooms
func (h *Handler) HandleLobby(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Lobby(h.registry.Rooms()).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render lobby", "error", err)
	}
}

// HandleRooms returns every active room with its member count
func (h *Handler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Rooms())
}

// HandleRoster returns the users of one room
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	room := domain.Normalize(r.PathValue("room"))
	if room == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "room required"})
		return
	}

	writeJSON(w, http.StatusOK, domain.RoomData{
		Room:  room,
		Users: h.registry.GetUsersInRoom(room),
	})
}

// HandleHealth reports liveness and current load
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": h.hub.ClientCount(),
		"users":       h.registry.Count(),
	})
}

// HandleWebSocket upgrades HTTP to WebSocket and attaches the connection to the hub
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	if err := h.hub.Register(client); err != nil {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
