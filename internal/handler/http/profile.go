package http

import (
	"log/slog"
	"net/http"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/validator"
)

// ProfileHandler handles HTTP requests for account profiles.
type ProfileHandler struct {
	service  *service.ProfileService
	identity *identity.Provider
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(svc *service.ProfileService, provider *identity.Provider, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:  svc,
		identity: provider,
		logger:   logger,
	}
}

// UpdateProfileRequest is the JSON request body for updating a profile.
// Absent fields keep their current value.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

// AvatarResponse carries the stored avatar URL.
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func (h *ProfileHandler) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := h.identity.CurrentUser(sessionIDFromContext(r.Context()))
	if userID == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return "", false
	}
	return userID, true
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile, err := h.service.Update(r.Context(), userID, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// UploadAvatar handles POST /api/v1/profile/avatar
//
// The avatar arrives as a multipart form with a single "avatar" file field.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "avatar file field is required"},
		})
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(r.Context(), userID, service.UploadAvatarInput{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: AvatarResponse{AvatarURL: url}})
}
