package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/access"
	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/featureflags"
	"github.com/yourorg/hoteldesk/internal/handler"
	"github.com/yourorg/hoteldesk/internal/infrastructure/logger"
	"github.com/yourorg/hoteldesk/internal/infrastructure/redis"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
	"github.com/yourorg/hoteldesk/internal/observability/tracing"
	"github.com/yourorg/hoteldesk/internal/reliability/retry"
	"github.com/yourorg/hoteldesk/internal/repository"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/auth"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/security/ratelimit"
	"github.com/yourorg/hoteldesk/internal/service"
	"github.com/yourorg/hoteldesk/internal/worker"
	"github.com/yourorg/hoteldesk/pkg/cache"
	"github.com/yourorg/hoteldesk/pkg/config"
	"github.com/yourorg/hoteldesk/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting HotelDesk server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "hoteldesk", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	// 4. Connect to PostgreSQL, retrying while the database comes up
	dbConfig := &database.Config{
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		User:            cfg.DatabaseUser,
		Password:        cfg.DatabasePassword,
		Database:        cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
	pool, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect database",
		func(ctx context.Context) (*database.ConnectionPool, error) {
			return database.NewConnectionPool(ctx, dbConfig, log)
		})
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 5. Connect to Redis for session revocation
	redisClient, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect redis",
		func(ctx context.Context) (*redis.Client, error) {
			return redis.NewClient(cfg.RedisURL)
		})
	if err != nil {
		log.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	// 6. Initialize repositories
	userRepo := repository.NewPostgresUserRepository(db, log)
	staffRepo := repository.NewPostgresStaffRepository(db, log)
	bookingRepo := repository.NewPostgresBookingRepository(db, log)
	customerRepo := repository.NewPostgresCustomerRepository(db, log)
	feedbackRepo := repository.NewPostgresFeedbackRepository(db, log)
	sessionStore := repository.NewRedisSessionStore(redisClient, log)

	// 7. Initialize security components and the access policy
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "hoteldesk")
	rateLimiter := ratelimit.NewLimiter(100, time.Minute) // 100 requests per minute per user
	auditLogger := audit.NewLogger(log)
	policy := access.NewPolicy(cfg.AdminRoles)

	if featureflags.Enabled(featureflags.DemoSeed) {
		seedDemoAdmin(ctx, userRepo, log)
	}

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, sessionStore, tokenManager, cfg.TokenTTL, log)
	profileService := service.NewProfileService(userRepo, cfg.MinPasswordLength, log)
	staffService := service.NewStaffService(staffRepo, cfg.Positions, log)
	customerService := service.NewCustomerService(customerRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	bookingService := service.NewBookingService(bookingRepo, cache.New(), cfg.DashboardCacheTTL, log)

	// 9. Initialize handlers
	eventsHub := handler.NewEventsHub(log, cfg.CORSAllowedOrigins)
	loginHandler := handler.NewLoginHandler(authService, auditLogger, log)
	logoutHandler := handler.NewLogoutHandler(authService, log)
	profileHandler := handler.NewProfileHandler(profileService, auditLogger, log)
	staffHandler := handler.NewStaffHandler(staffService, auditLogger, eventsHub, log)
	customersHandler := handler.NewCustomersHandler(customerService, log)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, auditLogger, eventsHub, log)
	bookingsHandler := handler.NewBookingsHandler(bookingService, log)
	dashboardHandler := handler.NewDashboardHandler(bookingService, policy, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, log)

	requireMutate := middleware.RequireAction(policy, access.MutateRecord, auditLogger)
	requireStaffView := middleware.RequireAction(policy, access.ViewStaffSection, auditLogger)

	// 10. Setup HTTP routes
	mux := http.NewServeMux()
	mux.Handle("POST /api/login", loginHandler)
	mux.Handle("POST /api/logout", logoutHandler)
	mux.Handle("/api/profile", profileHandler)
	mux.Handle("GET /api/staff", requireStaffView(http.HandlerFunc(staffHandler.List)))
	mux.Handle("POST /api/staff", requireMutate(http.HandlerFunc(staffHandler.Add)))
	mux.Handle("PUT /api/staff/{id}", requireMutate(http.HandlerFunc(staffHandler.Update)))
	mux.Handle("DELETE /api/staff/{id}", requireMutate(http.HandlerFunc(staffHandler.Delete)))
	mux.Handle("GET /api/customers", customersHandler)
	mux.HandleFunc("GET /api/feedback", feedbackHandler.List)
	mux.Handle("POST /api/feedback", requireMutate(http.HandlerFunc(feedbackHandler.Submit)))
	mux.HandleFunc("GET /api/bookings", bookingsHandler.List)
	mux.HandleFunc("GET /api/rooms/available", bookingsHandler.AvailableRooms)
	mux.Handle("GET /api/dashboard", dashboardHandler)
	if featureflags.Enabled(featureflags.EventStream) {
		mux.Handle("GET /ws/events", eventsHub)
	}
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> metrics -> JWT -> rate limit -> content type -> CORS
	rootHandler := withRequestID(
		metrics.HTTPMetricsMiddleware(
			middleware.JWTMiddleware(tokenManager, sessionStore, log)(
				middleware.RateLimitMiddleware(rateLimiter, log)(
					middleware.ValidateJSONContentType(log)(handlerWithCORS),
				),
			),
		),
		log,
	)

	// 11. Start checkout worker in background
	checkoutWorker := worker.NewCheckoutWorker(bookingService, eventsHub, log, cfg.CheckoutSweepInterval)
	go checkoutWorker.Start(ctx)

	// 12. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(rootHandler, "hoteldesk"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Duration("checkout_sweep", cfg.CheckoutSweepInterval),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel() // Stop checkout worker
	eventsHub.Close()
	rateLimiter.Stop()
	log.Info("server stopped")
}

// seedDemoAdmin creates the demo admin account on first boot so a fresh
// environment is usable without manual SQL.
func seedDemoAdmin(ctx context.Context, users *repository.PostgresUserRepository, log *slog.Logger) {
	if _, err := users.FindByUsername(ctx, "admin"); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash demo password", slog.String("error", err.Error()))
		return
	}

	admin := &domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
		FirstName:    "Hotel",
		LastName:     "Admin",
		Position:     "Admin",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Error("failed to seed demo admin", slog.String("error", err.Error()))
		return
	}
	log.Info("seeded demo admin account", slog.Int("user_id", admin.UserID))
}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), "request_id", reqID) //nolint:staticcheck // audit log reads this key
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
