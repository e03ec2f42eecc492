package handlers

import (
	"net/http"

	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/swipe"
	"github.com/rohits-web03/dealls/internal/utils"
)

type TargetUser struct {
	IsVerified bool `json:"isVerified"`
}

type SwipeResponse struct {
	Message         string          `json:"message"`
	TotalSwipes     int             `json:"totalSwipes"`
	RemainingSwipes swipe.Remaining `json:"remainingSwipes" swaggertype:"string" example:"9"`
	TargetUser      TargetUser      `json:"targetUser"`
}

type SwipeRejection struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Code        apperr.Kind `json:"code" swaggertype:"string" enums:"ALREADY_SWIPED,LIMIT_REACHED"`
	TotalSwipes int         `json:"totalSwipes"`
}

var rejectionKinds = map[swipe.Rejection]apperr.Kind{
	swipe.AlreadySwiped: apperr.AlreadySwiped,
	swipe.LimitReached:  apperr.LimitReached,
}

// Swipe godoc
// @Summary Swipe on another user's profile
// @Description Counts against the daily quota of 10 unless the caller has unlimited swipes.
// @Tags Swipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SwipeInput true "Target and direction"
// @Success 200 {object} SwipeResponse
// @Failure 400 {object} SwipeRejection
// @Failure 401 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/swipe [post]
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var input services.SwipeInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.swipes.Swipe(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !out.Accepted {
		rejection := apperr.New(rejectionKinds[out.Rejection], out.Message)
		utils.WriteJSON(w, rejection.Status(), SwipeRejection{
			Success:     false,
			Message:     rejection.Message,
			Code:        rejection.Kind,
			TotalSwipes: out.TotalSwipes,
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, SwipeResponse{
		Message:         out.Message,
		TotalSwipes:     out.TotalSwipes,
		RemainingSwipes: out.Remaining,
		TargetUser:      TargetUser{IsVerified: out.TargetIsVerified},
	})
}
