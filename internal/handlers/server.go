package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"bookinub-backend/internal/auth"
	"bookinub-backend/internal/bookings"
	"bookinub-backend/internal/config"
	"bookinub-backend/internal/metrics"
	"bookinub-backend/internal/middleware"
	"bookinub-backend/internal/transport"
	"bookinub-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// StoreStatus reports whether the booking store is currently reachable.
type StoreStatus interface {
	Connected() bool
}

type Server struct {
	Cfg      *config.Config
	Log      *slog.Logger
	Val      *validation.Validator
	Store    StoreStatus
	Bookings *bookings.Handler
	Tokens   *auth.Manager
	Admin    *auth.AdminCredentials
	Limiter  *middleware.RateLimiter

	now func() time.Time
}

func (s *Server) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

// Router builds the HTTP surface. Every API route lives under Cfg.APIBasePath.
func (s *Server) Router() http.Handler {
	limiter := s.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(s.Cfg.RateLimitBookings, time.Duration(s.Cfg.RateLimitWindowSec)*time.Second, nil)
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.CORS(s.Cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.NotFound(transport.NotFound)
	r.MethodNotAllowed(transport.MethodNotAllowed)

	if s.Cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route(s.Cfg.APIBasePath, func(api chi.Router) {
		api.Get("/health", s.Health)
		api.Get("/services", s.Bookings.Services)
		api.Get("/bookings", s.Bookings.List)
		api.With(limiter.Middleware).Post("/bookings", s.Bookings.Create)
		api.Get("/bookings/{id}", s.Bookings.Get)

		api.Route("/admin", func(admin chi.Router) {
			admin.With(limiter.Middleware).Post("/login", s.AdminLogin)
			admin.Post("/refresh", s.AdminRefresh)
			admin.Post("/logout", s.AdminLogout)

			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(s.Cfg.AdminAPIKey, s.Tokens))
				protected.Get("/bookings", s.Bookings.AdminList)
				protected.Patch("/bookings/{id}/status", s.Bookings.AdminUpdateStatus)
			})
		})
	})

	return r
}
