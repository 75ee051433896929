package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pawadopt/pawadopt/internal/domain"
	"github.com/pawadopt/pawadopt/internal/service"
)

// UserHandler handles account registration, login, and the caller's
// notification log.
type UserHandler struct {
	auth      *service.AuthService
	adoptions *service.AdoptionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService, adoptions *service.AdoptionService) *UserHandler {
	return &UserHandler{auth: auth, adoptions: adoptions}
}

// HandleRegister creates a new account.
// POST /api/users/register
// Request:  {"username":"...","password":"..."}
// Response: 201 {"message":"User registered successfully"}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			writeMessage(w, http.StatusConflict, "Username already exists")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("register user", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Server error: User registration failed",
			"error":   err.Error(),
		})
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

// HandleLogin verifies credentials and issues a 24-hour bearer token.
// POST /api/users/login
// Request:  {"username":"...","password":"..."}
// Response: 200 {"token":"..."}
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "User does not exist")
		case errors.Is(err, service.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "Password is incorrect")
		default:
			slog.Error("login user", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleNotifications returns the caller's notification log in append order.
// GET /api/users/notifications
func (h *UserHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	notifications, err := h.adoptions.Notifications(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("list notifications", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, toNotificationDTOs(notifications))
}
