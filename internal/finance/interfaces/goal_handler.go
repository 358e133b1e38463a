package interfaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/shopspring/decimal"
)

type GoalServiceInterface interface {
	GetUserGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, userID string, goal *domain.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

type GoalHandler struct {
	service      GoalServiceInterface
	logger       *slog.Logger
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
}

func NewGoalHandler(service GoalServiceInterface, logger *slog.Logger, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *GoalHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &GoalHandler{service: service, logger: logger, respondJSON: respondJSON, respondError: respondError}
}

func (h *GoalHandler) GetUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.GetUserGoals(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to retrieve goals")
		return
	}
	h.respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if !decodeJSON(w, r, &req, h.respondError) {
		return
	}

	goal := domain.Goal{Description: req.Description, Amount: req.Amount}
	if err := h.service.CreateGoal(r.Context(), userID, &goal); err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to create goal")
		return
	}
	h.respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteGoal(r.Context(), userID, r.PathValue("id")); err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
