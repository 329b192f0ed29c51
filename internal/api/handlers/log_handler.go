package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/exercise-tracker-be/internal/services"
)

// LogHandler serves a user's exercise log.
type LogHandler struct {
	service services.LogServiceProvider
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service services.LogServiceProvider) *LogHandler {
	return &LogHandler{service: service}
}

// Get handles GET /api/users/{id}/logs?from&to&limit.
func (h *LogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	query := services.LogQuery{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	}

	exerciseLog, err := h.service.GetLog(r.Context(), id, query)
	if err != nil {
		writeFailure(w, r, "get_log", err)
		return
	}
	writeResult(w, "get_log", exerciseLog)
}
