package user

import (
	"errors"
	"log/slog"
	"net/http"
)

type Handler struct {
	userService  Service
	logger       *slog.Logger
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	userService Service,
	logger *slog.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	if userService == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		userService:  userService,
		logger:       logger,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleGetCurrentUser returns the profile behind the request's access token.
func (h *Handler) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to load current user", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Could not load user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
