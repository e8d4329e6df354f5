package wire

import (
	"clubops/internal/adaptor"
	"clubops/internal/data/repository"
	"clubops/internal/realtime"
	"clubops/internal/usecase"
	"clubops/pkg/middleware"
	"clubops/pkg/token"
	"clubops/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the background pieces the server must run.
type App struct {
	Router       *chi.Mux
	Hub          *realtime.Hub
	LoginLimiter *middleware.RateLimiter
}

// Wiring builds services, handlers and routes. events is where services
// publish realtime notifications: the hub itself, or a RedisBus feeding it.
func Wiring(repo *repository.Repository, hub *realtime.Hub, events realtime.Broadcaster, config *utils.Config, logger *zap.Logger) *App {
	tokens := token.NewService(config.JWT.Secret, config.JWT.Expiry())
	service := usecase.NewService(repo, tokens, events, logger)
	handler := adaptor.NewHandler(service, repo, hub, config.CORS.AllowedOrigins, logger)

	limiter := middleware.NewRateLimiter(config.App.LoginRatePerMin, logger)
	router := setupRouter(handler, service, limiter, config, logger)

	return &App{
		Router:       router,
		Hub:          hub,
		LoginLimiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(config.CORS.AllowedOrigins, config.App.Debug))

	r.Get("/health", handler.Health.Check)
	r.Get("/ws", handler.Realtime.Serve)

	wireAuth(r, handler.Auth, service, limiter, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthSession(service.Auth, logger))
		r.Use(middleware.RequireClub(service.Auth, logger))

		wireDancer(r, handler.Dancer)
		wireQueue(r, handler.Queue)
		wireVip(r, handler.Vip)
		wireFinancial(r, handler.Financial)
	})

	return r
}
