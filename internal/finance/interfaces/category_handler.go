package interfaces

import (
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

type CategoryServiceInterface interface {
	GetVocabulary() domain.CategoryVocabulary
}

type CategoryHandler struct {
	service     CategoryServiceInterface
	respondJSON RespondJSONFunc
}

func NewCategoryHandler(service CategoryServiceInterface, respondJSON RespondJSONFunc) *CategoryHandler {
	if service == nil || respondJSON == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:     service,
		respondJSON: respondJSON,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.GetVocabulary())
}
