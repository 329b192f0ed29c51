package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/exercise-tracker-be/internal/services"
)

// ExerciseHandler handles HTTP requests that log exercises.
type ExerciseHandler struct {
	service services.ExerciseServiceProvider
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service services.ExerciseServiceProvider) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// Create handles adding an exercise to the user in the path.
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(r); err != nil {
		writeFailure(w, r, "add_exercise", err)
		return
	}
	input := services.ExerciseInput{
		Description: r.PostForm.Get("description"),
		Duration:    r.PostForm.Get("duration"),
		Date:        r.PostForm.Get("date"),
	}

	exercise, err := h.service.AddExercise(r.Context(), id, input)
	if err != nil {
		writeFailure(w, r, "add_exercise", err)
		return
	}
	writeResult(w, "add_exercise", exercise)
}
