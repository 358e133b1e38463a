package interfaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/shopspring/decimal"
)

type TransactionServiceInterface interface {
	GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, transaction *domain.Transaction) error
	UpdateTransaction(ctx context.Context, userID, transactionID string, changes domain.TransactionChanges) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	logger       *slog.Logger
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	logger *slog.Logger,
	respondJSON RespondJSONFunc,
	respondError RespondErrorFunc,
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		logger:       logger,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// transactionRequest is the body of create and update. Type is ignored on update.
type transactionRequest struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        domain.Date     `json:"date"`
}

func (h *TransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.service.GetUserTransactions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to retrieve transactions")
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req transactionRequest
	if !decodeJSON(w, r, &req, h.respondError) {
		return
	}

	transaction := domain.Transaction{
		Type:        domain.TransactionType(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}
	if err := h.service.CreateTransaction(r.Context(), userID, &transaction); err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to create transaction")
		return
	}
	h.respondJSON(w, http.StatusCreated, transaction)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req transactionRequest
	if !decodeJSON(w, r, &req, h.respondError) {
		return
	}

	updated, err := h.service.UpdateTransaction(r.Context(), userID, r.PathValue("id"), domain.TransactionChanges{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to update transaction")
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), userID, r.PathValue("id")); err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
