package interfaces

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, userID string) (*application.Report, error)
	ExportCSV(ctx context.Context, userID string, w io.Writer) error
}

type ReportHandler struct {
	service      ReportServiceInterface
	logger       *slog.Logger
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
}

func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *ReportHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ReportHandler{service: service, logger: logger, respondJSON: respondJSON, respondError: respondError}
}

func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := h.service.GetReport(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to build summary")
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

// ExportTransactions streams the CSV export as a file download. The body is
// buffered so a failure can still be reported as a JSON error.
func (h *ReportHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), userID, &buf); err != nil {
		respondServiceError(w, h.logger, h.respondError, err, "Failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+aggregation.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write export", slog.String("error", err.Error()))
	}
}
