package handlers

import (
	"net/http"
	"time"

	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/utils"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param redirect query string false "login or register" Enums(login, register)
// @Success 307
// @Failure 503 {object} utils.Payload
// @Router /api/auth/google/login [get]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		h.writeError(w, r, googleUnavailable())
		return
	}

	flow := r.URL.Query().Get("redirect")
	if flow == "" {
		flow = flowLogin
	}
	if flow != flowLogin && flow != flowRegister {
		h.writeError(w, r, apperr.Invalid(apperr.FieldError{Field: "redirect", Message: "redirect must be 'login' or 'register'"}))
		return
	}

	state, err := encodeState(flow)
	if err != nil {
		h.writeError(w, r, apperr.Storage(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int(stateCookieTTL.Seconds()),
		Secure:   h.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Tags Auth
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 200 {object} utils.Payload{data=TokenData}
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 409 {object} utils.Payload
// @Router /api/auth/google/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		h.writeError(w, r, googleUnavailable())
		return
	}

	state := r.FormValue("state")
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != state {
		h.writeError(w, r, invalidState())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/api/auth/google",
		MaxAge:   -1,
		Secure:   h.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s, err := decodeState(state)
	if err != nil {
		h.writeError(w, r, invalidState())
		return
	}

	googleUser, err := h.google.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.log.WarnContext(r.Context(), "google exchange failed", "error", err)
		h.writeError(w, r, apperr.Wrap(apperr.Unauthorized, "Google sign-in failed", err))
		return
	}

	token, err := h.accounts.SignInWithGoogle(r.Context(), googleUser.Email, googleUser.Name, s.Flow == flowRegister)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data:    TokenData{Token: token},
	})
}

func googleUnavailable() *apperr.Error {
	return apperr.New(apperr.Unavailable, "Google sign-in is not configured")
}

func invalidState() *apperr.Error {
	return apperr.Invalid(apperr.FieldError{Field: "state", Message: "Invalid OAuth state"})
}
