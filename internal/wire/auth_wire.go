package wire

import (
	"clubops/internal/adaptor"
	"clubops/internal/usecase"
	"clubops/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	r.Route("/auth", func(r chi.Router) {
		// public
		r.Post("/register", authHandler.Register)
		r.With(limiter.Limit).Post("/login", authHandler.Login)

		// bearer only, no club scope
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(service.Auth, log))
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})
}
