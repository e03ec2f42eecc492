package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/utils"
)

type PurchaseData struct {
	UserID    uuid.UUID `json:"userId"`
	IsPremium bool      `json:"isPremium"`
}

// PurchasePremium godoc
// @Summary Upgrade the caller to premium
// @Tags Premium
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Payload{data=PurchaseData}
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/purchase-premium [post]
func (h *Handler) PurchasePremium(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.premium.Purchase(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Purchase successfully",
		Data:    PurchaseData{UserID: user.ID, IsPremium: user.IsPremium},
	})
}
