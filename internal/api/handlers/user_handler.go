package handlers

import (
	"net/http"

	"github.com/isdelr/exercise-tracker-be/internal/services"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserRequest is the form body of a new user.
type CreateUserRequest struct {
	Username string
}

// GetAll handles listing every user.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		writeFailure(w, r, "list_users", err)
		return
	}
	writeResult(w, "list_users", users)
}

// Create handles registering a new username.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeFailure(w, r, "create_user", err)
		return
	}
	req := CreateUserRequest{Username: r.PostForm.Get("username")}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeFailure(w, r, "create_user", err)
		return
	}
	writeResult(w, "create_user", user)
}
