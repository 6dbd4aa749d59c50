package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookinub-backend/internal/auth"
	"bookinub-backend/internal/bookings"
	"bookinub-backend/internal/config"
	"bookinub-backend/internal/db"
	"bookinub-backend/internal/handlers"
	"bookinub-backend/internal/metrics"
	"bookinub-backend/internal/middleware"
	"bookinub-backend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	var (
		repo  bookings.Repository
		store handlers.StoreStatus
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := bookings.NewMemoryRepository()
		repo, store = mem, mem
		logger.Warn("using in-memory booking store; data is lost on restart")
	default:
		mongoStore := connectMongo(cfg, logger)
		defer mongoStore.Disconnect(context.Background())
		repo = bookings.NewMongoRepository(mongoStore.Cols.Bookings)
		store = mongoStore
	}

	val := validation.New()
	bookingService := bookings.NewService(repo, val, cfg.Timezone)
	bookingHandler := bookings.NewHandler(bookingService, val, logger)

	var tokens *auth.Manager
	if cfg.JWTSecret != "" {
		tokens = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "bookinub-backend",
		}
	}

	var admin *auth.AdminCredentials
	if cfg.AdminPassword != "" {
		admin, err = auth.NewAdminCredentials(cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			logger.Error("admin credentials setup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if admin == nil || tokens == nil {
		logger.Info("admin login disabled")
	}

	limiter := newRateLimiter(cfg, logger)

	server := &handlers.Server{
		Cfg:      cfg,
		Log:      logger,
		Val:      val,
		Store:    store,
		Bookings: bookingHandler,
		Tokens:   tokens,
		Admin:    admin,
		Limiter:  limiter,
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started",
			slog.String("addr", cfg.ServerAddr),
			slog.String("api_base", cfg.APIBasePath),
			slog.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}

// connectMongo opens the store handle. An unreachable server is logged and
// the API keeps serving so /health can report it, except in development
// where the process stops right away.
func connectMongo(cfg *config.Config, logger *slog.Logger) *db.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		if store == nil {
			logger.Error("mongo configuration invalid", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		if cfg.IsDevelopment() {
			os.Exit(1)
		}
		return store
	}
	logger.Info("mongo connected", slog.String("database", cfg.MongoDB))

	if err := db.EnsureBookingSchema(ctx, store.DB); err != nil {
		logger.Warn("booking schema setup failed", slog.String("error", err.Error()))
		if cfg.IsDevelopment() {
			os.Exit(1)
		}
	}
	if err := db.EnsureIndexes(ctx, store.Cols); err != nil {
		logger.Warn("index creation failed", slog.String("error", err.Error()))
		if cfg.IsDevelopment() {
			os.Exit(1)
		}
	}
	return store
}

func newRateLimiter(cfg *config.Config, logger *slog.Logger) *middleware.RateLimiter {
	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	if cfg.RedisURL == "" && cfg.RedisAddr == "" {
		return middleware.NewRateLimiter(cfg.RateLimitBookings, window, middleware.NewMemoryCounter())
	}

	client, err := middleware.NewRedisClient(cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis configuration invalid; using local rate limits", slog.String("error", err.Error()))
		return middleware.NewRateLimiter(cfg.RateLimitBookings, window, middleware.NewMemoryCounter())
	}
	counter := middleware.NewRedisCounter(client, "bookinub:ratelimit:")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := counter.Ping(ctx); err != nil {
		logger.Warn("redis unreachable; using local rate limits", slog.String("error", err.Error()))
		_ = counter.Close()
		return middleware.NewRateLimiter(cfg.RateLimitBookings, window, middleware.NewMemoryCounter())
	}
	logger.Info("redis rate limiting enabled")
	return middleware.NewRateLimiter(cfg.RateLimitBookings, window, counter)
}
