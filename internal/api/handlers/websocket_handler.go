package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	ws "github.com/isdelr/exercise-tracker-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades HTTP connections into a user's live exercise feed.
type WebSocketHandler struct {
	hub         *ws.Hub
	userService services.UserServiceProvider
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. Browser origins are
// checked against allowedOrigins, where "*" admits any origin.
func NewWebSocketHandler(hub *ws.Hub, userService services.UserServiceProvider, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originAllowed(allowedOrigins),
		},
	}
}

// originAllowed admits requests without an Origin header (non-browser
// clients) and those whose origin is listed.
func originAllowed(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// Serve handles GET /api/users/{id}/stream.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.userService.GetUser(r.Context(), id); err != nil {
		writeFailure(w, r, "stream", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(conn, id)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go func() {
		client.ReadPump()
		h.hub.Leave(client)
	}()
}
