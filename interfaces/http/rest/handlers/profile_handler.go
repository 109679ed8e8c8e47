package handlers

import (
	"encoding/json"
	"net/http"

	"userdata/application/ports"
	"userdata/pkg/auth"
	"userdata/pkg/utils"

	"go.uber.org/zap"
)

// ProfileHandler handles profile read/write requests
type ProfileHandler struct {
	repo   ports.UserDataRepository
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(repo ports.UserDataRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{repo: repo, logger: logger}
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	UserLevel int `json:"userLevel" validate:"required,oneof=1 2 3"`
}

// UpdateProfileResponse represents the response for updating the profile
type UpdateProfileResponse struct {
	Message   string `json:"message"`
	UserLevel int    `json:"userLevel"`
}

// GetProfileResponse represents the profile read response. UserLevel is
// omitted entirely when the user has no profile; that is not an error.
type GetProfileResponse struct {
	UserLevel *int `json:"userLevel,omitempty"`
}

// UpdateProfile handles POST /userdata/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "userLevel must be 1, 2, or 3")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "userLevel must be 1, 2, or 3")
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.repo.PutProfile(r.Context(), user.UserID, req.UserLevel); err != nil {
		h.logger.Error("Profile update error",
			zap.String("userId", user.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, UpdateProfileResponse{
		Message:   "Profile updated",
		UserLevel: req.UserLevel,
	})
}

// GetProfile handles GET /userdata/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := h.repo.GetProfile(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Profile fetch error",
			zap.String("userId", user.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	var resp GetProfileResponse
	if record != nil {
		resp.UserLevel = &record.UserLevel
	}
	respondJSON(w, h.logger, http.StatusOK, resp)
}
