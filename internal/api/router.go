package api

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rohits-web03/dealls/docs"
	"github.com/rohits-web03/dealls/internal/api/handlers"
	"github.com/rohits-web03/dealls/internal/api/middleware"
)

type RouterDeps struct {
	Handler *handlers.Handler
	Tokens  middleware.TokenVerifier
	// Limiter guards register and login; nil disables rate limiting.
	Limiter middleware.RateLimiter
	Log     *slog.Logger
	Cors    cors.Options
}

func SetupRouter(d RouterDeps) http.Handler {
	h := d.Handler
	mainMux := http.NewServeMux()

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", h.Health)
	mainMux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	limited := middleware.RateLimit(d.Limiter, d.Log)
	mainMux.Handle("POST /api/auth/register", limited(http.HandlerFunc(h.Register)))
	mainMux.Handle("POST /api/auth/login", limited(http.HandlerFunc(h.Login)))
	mainMux.HandleFunc("GET /api/auth/google/login", h.GoogleLogin)
	mainMux.HandleFunc("GET /api/auth/google/callback", h.GoogleCallback)

	// ---------- PROTECTED ROUTES ----------
	auth := middleware.Auth(d.Tokens)
	mainMux.Handle("POST /api/swipe", auth(http.HandlerFunc(h.Swipe)))
	mainMux.Handle("POST /api/purchase-premium", auth(http.HandlerFunc(h.PurchasePremium)))
	mainMux.Handle("GET /api/profile", auth(http.HandlerFunc(h.Profile)))
	mainMux.Handle("POST /api/profile/photo/presign", auth(http.HandlerFunc(h.PresignPhoto)))
	mainMux.Handle("POST /api/profile/photo/complete", auth(http.HandlerFunc(h.CompletePhoto)))

	d.Log.Info("router initialized")
	handler := cors.New(d.Cors).Handler(mainMux)
	handler = middleware.Logger(d.Log)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
