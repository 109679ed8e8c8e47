package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"userdata/application/ports"
	"userdata/domain/userdata"
	"userdata/pkg/auth"
	"userdata/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WordHandler handles bulk word saves and the whole-partition listing.
//
// Two save entry points exist on purpose: a path-scoped variant reading
// bookId/pageNumber from the URL and a body-scoped variant reading them from
// the payload. They serve different callers and both must stay.
type WordHandler struct {
	repo   ports.UserDataRepository
	logger *zap.Logger
}

// NewWordHandler creates a new word handler
func NewWordHandler(repo ports.UserDataRepository, logger *zap.Logger) *WordHandler {
	return &WordHandler{repo: repo, logger: logger}
}

// WordItem is one element of a bulk word save. The word is required because
// it becomes part of the sort key; meaning and example are free-form.
type WordItem struct {
	Word    string `json:"word" validate:"required"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// SaveWordsRequest represents the path-scoped bulk save body. An empty words
// array is valid and results in zero writes; a missing or non-array field is
// rejected.
type SaveWordsRequest struct {
	Words []WordItem `json:"words" validate:"omitempty,dive"`
}

// SaveWordsBodyRequest represents the body-scoped bulk save body.
type SaveWordsBodyRequest struct {
	BookID     string      `json:"bookId" validate:"required"`
	PageNumber json.Number `json:"pageNumber" validate:"required"`
	Words      []WordItem  `json:"words" validate:"omitempty,dive"`
}

// SaveWordsBodyResponse echoes the addressed page back to the caller.
type SaveWordsBodyResponse struct {
	Message    string      `json:"message"`
	BookID     string      `json:"bookId"`
	PageNumber json.Number `json:"pageNumber"`
}

// ListWordsResponse represents the whole-partition listing. Despite the
// name, items spans every entity type the user owns: profile, books, pages
// and words all share the partition key and no sort-key filter is applied.
type ListWordsResponse struct {
	Count int               `json:"count"`
	Items []userdata.Record `json:"items"`
}

// SaveWords handles POST /userdata/books/{bookId}/pages/{pageNumber}/words
func (h *WordHandler) SaveWords(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")
	pageNumber := chi.URLParam(r, "pageNumber")

	var req SaveWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "words[] required")
		return
	}
	if req.Words == nil {
		respondError(w, h.logger, http.StatusBadRequest, "words[] required")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "words[] required")
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.saveWords(r.Context(), user.UserID, bookID, pageNumber, req.Words); err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to save words")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]string{"message": "Words saved"})
}

// SaveWordsForPage handles POST /userdata/words, the body-scoped variant.
// Unlike the path-scoped route it refuses anonymous callers.
func (h *WordHandler) SaveWordsForPage(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil || user.IsAnonymous() {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SaveWordsBodyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bookId, pageNumber and words[] required")
		return
	}
	if req.Words == nil {
		respondError(w, h.logger, http.StatusBadRequest, "bookId, pageNumber and words[] required")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bookId, pageNumber and words[] required")
		return
	}

	if err := h.saveWords(r.Context(), user.UserID, req.BookID, req.PageNumber.String(), req.Words); err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to save words")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, SaveWordsBodyResponse{
		Message:    "Words saved",
		BookID:     req.BookID,
		PageNumber: req.PageNumber,
	})
}

// ListAllWords handles GET /userdata/words
func (h *WordHandler) ListAllWords(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil || user.IsAnonymous() {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.repo.ListAll(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Error fetching words",
			zap.String("userId", user.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch user data")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ListWordsResponse{
		Count: len(items),
		Items: items,
	})
}

func (h *WordHandler) saveWords(ctx context.Context, userID, bookID, pageNumber string, items []WordItem) error {
	words := make([]userdata.WordInput, len(items))
	for i, item := range items {
		words[i] = userdata.WordInput{
			Word:    item.Word,
			Meaning: item.Meaning,
			Example: item.Example,
		}
	}

	if err := h.repo.SaveWords(ctx, userID, bookID, pageNumber, words); err != nil {
		h.logger.Error("Save Words Error",
			zap.String("userId", userID),
			zap.String("bookId", bookID),
			zap.String("pageNumber", pageNumber),
			zap.Int("count", len(words)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
