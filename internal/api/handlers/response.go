package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/rs/zerolog/log"
)

// Upper bound on the in-memory part of multipart forms.
const maxFormMemory = 1 << 20

// MessageResponse reports a domain conflict such as a taken username.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse reports a failure the request could not recover from.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeResult renders the successful value v for operation.
func writeResult(w http.ResponseWriter, operation string, v interface{}) {
	metrics.RecordOutcome(operation, "ok")
	writeJSON(w, http.StatusOK, v)
}

// writeFailure renders err for operation. Conflicts become {message}, anything
// else {error}. Both keep status 200 so existing browser clients can read them.
func writeFailure(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if services.IsConflict(err) {
		metrics.RecordOutcome(operation, "conflict")
		log.Info().Str("operation", operation).Str("path", r.URL.Path).Msg(err.Error())
		writeJSON(w, http.StatusOK, MessageResponse{Message: err.Error()})
		return
	}
	metrics.RecordOutcome(operation, "error")
	log.Error().Err(err).Str("operation", operation).Str("path", r.URL.Path).Msg("Request failed")
	writeJSON(w, http.StatusOK, ErrorResponse{Error: err.Error()})
}

// parseForm fills r.PostForm from urlencoded or multipart bodies.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}
