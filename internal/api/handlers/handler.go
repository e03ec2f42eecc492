package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/api/middleware"
	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/utils"
)

const maxBodyBytes = 1 << 20

// Handler serves the HTTP API on top of the service layer.
type Handler struct {
	accounts *services.AccountService
	swipes   *services.SwipeService
	premium  *services.PremiumService
	profiles *services.ProfileService
	google   services.GoogleProvider
	log      *slog.Logger
	secure   bool
}

type Deps struct {
	Accounts *services.AccountService
	Swipes   *services.SwipeService
	Premium  *services.PremiumService
	Profiles *services.ProfileService
	// Google is nil when Google sign-in is not configured.
	Google services.GoogleProvider
	Log    *slog.Logger
	// SecureCookies marks the OAuth state cookie Secure.
	SecureCookies bool
}

func New(d Deps) *Handler {
	return &Handler{
		accounts: d.Accounts,
		swipes:   d.Swipes,
		premium:  d.Premium,
		profiles: d.Profiles,
		google:   d.Google,
		log:      d.Log,
		secure:   d.SecureCookies,
	}
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid input", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.New(apperr.Validation, "Invalid input")
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.StorageFailure {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", e.Err),
		)
	}

	message := e.Message
	var fields any
	if len(e.Fields) > 0 {
		message = e.Fields[0].Message
		fields = e.Fields
	}
	utils.JSONResponse(w, e.Status(), utils.Payload{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// currentUser returns the ID placed in the context by the auth middleware.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
	}
	return id, ok
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}
