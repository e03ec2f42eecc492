package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/utils"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// UserIDFromContext returns the authenticated user's ID set by Auth.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// Auth requires an "Authorization: Bearer <token>" header. A missing header
// or an expired token is answered with 401, a token that fails verification
// with 403.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Verify(tokenStr)
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				deny(w, http.StatusUnauthorized, "Token has expired")
				return
			case err != nil:
				deny(w, http.StatusForbidden, "Invalid token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				deny(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func deny(w http.ResponseWriter, status int, message string) {
	utils.JSONResponse(w, status, utils.Payload{
		Success: false,
		Message: message,
	})
}
