package wire

import (
	"planetarium-booking/internal/adaptor"
	"planetarium-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures registration, JWT and profile routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/api/user", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", userHandler.Register)
		r.Post("/token", userHandler.Token)
		r.Post("/token/refresh", userHandler.RefreshToken)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.Auth(auth, log)).Get("/me", userHandler.Me)
	})
}
