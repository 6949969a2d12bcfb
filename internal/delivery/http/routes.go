package http

import (
	"net/http"

	"github.com/mmuslimabdulj/goat-relay/internal/config"
	"github.com/mmuslimabdulj/goat-relay/internal/middleware"
)

// NewRouter wires every route behind the security headers middleware
func NewRouter(h *Handler, cfg *config.Config, wsLimiter *middleware.IPRateLimiter) http.Handler {
	mux := http.NewServeMux()

	// Client UI is served from disk when configured
	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		mux.Handle("/static/", http.StripPrefix("/static/", fs))
	}

	mux.HandleFunc("/", h.HandleLobby)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("GET /api/rooms", h.HandleRooms)
	mux.HandleFunc("GET /api/rooms/{room}/users", h.HandleRoster)

	// WebSocket route with rate limiting
	mux.Handle("/ws", middleware.RateLimit(wsLimiter)(http.HandlerFunc(h.HandleWebSocket)))

	return middleware.SecurityHeaders(mux)
}
