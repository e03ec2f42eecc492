package handlers

import (
	"net/http"

	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/utils"
)

// Profile godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Payload{data=services.Profile}
// @Failure 401 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile retrieved",
		Data:    profile,
	})
}

// PresignPhoto godoc
// @Summary Get an upload URL for a profile photo
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PhotoUploadInput true "Photo content type"
// @Success 200 {object} utils.Payload{data=services.PhotoUpload}
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/profile/photo/presign [post]
func (h *Handler) PresignPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var input services.PhotoUploadInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	upload, err := h.profiles.PresignPhoto(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload URL generated",
		Data:    upload,
	})
}

// CompletePhoto godoc
// @Summary Attach an uploaded photo to the caller's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PhotoCompleteInput true "Uploaded object key"
// @Success 200 {object} utils.Payload{data=services.Profile}
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/profile/photo/complete [post]
func (h *Handler) CompletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var input services.PhotoCompleteInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.profiles.CompletePhoto(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile photo updated",
		Data:    profile,
	})
}
