package handlers

import (
	"encoding/json"
	"net/http"

	"userdata/application/ports"
	"userdata/domain/userdata"
	"userdata/pkg/auth"
	"userdata/pkg/utils"

	"go.uber.org/zap"
)

// BookHandler handles book create/list requests
type BookHandler struct {
	repo   ports.UserDataRepository
	logger *zap.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(repo ports.UserDataRepository, logger *zap.Logger) *BookHandler {
	return &BookHandler{repo: repo, logger: logger}
}

// CreateBookRequest represents the request body for creating a book
type CreateBookRequest struct {
	BookID string `json:"bookId" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

// CreateBookResponse represents the response for creating a book
type CreateBookResponse struct {
	Message string `json:"message"`
	BookID  string `json:"bookId"`
}

// ListBooksResponse represents the book listing response
type ListBooksResponse struct {
	Books []userdata.Record `json:"books"`
}

// CreateBook handles POST /userdata/books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bookId and title required")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bookId and title required")
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.repo.PutBook(r.Context(), user.UserID, req.BookID, req.Title); err != nil {
		h.logger.Error("Create Book Error",
			zap.String("userId", user.UserID),
			zap.String("bookId", req.BookID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to create book")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, CreateBookResponse{
		Message: "Book created",
		BookID:  req.BookID,
	})
}

// ListBooks handles GET /userdata/books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	books, err := h.repo.ListBooks(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("List Books Error",
			zap.String("userId", user.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch books")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ListBooksResponse{Books: books})
}
