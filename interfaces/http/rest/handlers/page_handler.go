package handlers

import (
	"encoding/json"
	"net/http"

	"userdata/application/ports"
	"userdata/domain/userdata"
	"userdata/pkg/auth"
	"userdata/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageHandler handles page create/list requests
type PageHandler struct {
	repo   ports.UserDataRepository
	logger *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(repo ports.UserDataRepository, logger *zap.Logger) *PageHandler {
	return &PageHandler{repo: repo, logger: logger}
}

// CreatePageRequest represents the request body for creating a page.
// PageNumber is a json.Number: callers send numeric page numbers and the
// digits flow into the sort key unchanged, with no padding.
type CreatePageRequest struct {
	PageNumber json.Number `json:"pageNumber" validate:"required"`
}

// CreatePageResponse represents the response for creating a page
type CreatePageResponse struct {
	Message    string      `json:"message"`
	PageNumber json.Number `json:"pageNumber"`
}

// ListPagesResponse represents the page listing response
type ListPagesResponse struct {
	Pages []userdata.Record `json:"pages"`
}

// CreatePage handles POST /userdata/books/{bookId}/pages
func (h *PageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "pageNumber required")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "pageNumber required")
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.repo.PutPage(r.Context(), user.UserID, bookID, req.PageNumber.String()); err != nil {
		h.logger.Error("Create Page Error",
			zap.String("userId", user.UserID),
			zap.String("bookId", bookID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to create page")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, CreatePageResponse{
		Message:    "Page created",
		PageNumber: req.PageNumber,
	})
}

// ListPages handles GET /userdata/books/{bookId}/pages. The result carries
// every item under the book's page prefix, which includes the WORD items
// nested under each page; see the repository for the flagged prefix boundary.
func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pages, err := h.repo.ListPages(r.Context(), user.UserID, bookID)
	if err != nil {
		h.logger.Error("List Pages Error",
			zap.String("userId", user.UserID),
			zap.String("bookId", bookID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch pages")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ListPagesResponse{Pages: pages})
}
