package api

import (
	"net/http"
	"time"

	"authd/internal/api/handler"
	"authd/internal/api/middleware"
	"authd/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	sessionService *service.SessionService,
	tokenService *service.TokenService,
	cookieTTL time.Duration,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Identity resolution runs on every request; individual routes declare
	// their own authorization requirement at registration.
	identity := middleware.NewIdentity(sessionService, tokenService)
	r.Use(identity.Resolve)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService, cookieTTL)
	authHandler.RegisterRoutes(r)

	userHandler := handler.NewUserHandler(userService)
	r.Route("/users", userHandler.RegisterRoutes)

	sessionHandler := handler.NewSessionHandler(sessionService)
	r.Route("/sessions", sessionHandler.RegisterRoutes)

	tokenHandler := handler.NewTokenHandler(tokenService)
	r.Route("/tokens", tokenHandler.RegisterRoutes)

	return r
}
