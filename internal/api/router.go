package api

import (
	"net/http"

	"github.com/certiverify/api/internal/api/handlers"
	"github.com/certiverify/api/internal/api/middleware"
	"github.com/certiverify/api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	certHandler := handlers.NewCertificateHandler(services.Certificate)

	// Public routes
	r.Get("/api", handlers.Health)
	r.Get("/api/", handlers.Health)
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/verify", certHandler.Verify)
	r.Post("/api/verify/", certHandler.Verify)
	r.Get("/api/stats", certHandler.Stats)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))
		r.Get("/api/me", authHandler.Me)
		r.Get("/api/certificates", certHandler.List)
		r.Post("/api/certificates", certHandler.Issue)
		r.Post("/api/revoke", certHandler.Revoke)
	})

	// Everything else is the JSON 404 envelope, wrong methods included.
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}
