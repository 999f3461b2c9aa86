package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hsrehman/SafeHaven-sub000/internal/config"
	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/handler"
	"github.com/Hsrehman/SafeHaven-sub000/internal/jobs"
	"github.com/Hsrehman/SafeHaven-sub000/internal/middleware"
	"github.com/Hsrehman/SafeHaven-sub000/internal/repository"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
	"github.com/Hsrehman/SafeHaven-sub000/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	shelterRepo := repository.NewShelterRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	applicantService := service.NewApplicantService(service.ApplicantServiceConfig{
		ApplicantRepo: applicantRepo,
	})

	shelterService := service.NewShelterService(service.ShelterServiceConfig{
		ShelterRepo:  shelterRepo,
		LocationRepo: shelterRepo,
	})

	matchService := service.NewMatchService(service.MatchServiceConfig{
		ApplicantRepo: applicantRepo,
		ShelterRepo:   shelterRepo,
	})

	applicationService := service.NewApplicationService(service.ApplicationServiceConfig{
		ApplicationRepo: applicationRepo,
		ApplicantRepo:   applicantRepo,
		ShelterRepo:     shelterRepo,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.Matching.RateLimit,
		Window: cfg.Matching.RateWindow,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Background jobs
	matchRefresher := jobs.NewMatchRefresher(applicationService, cfg.Jobs.MatchRefreshInterval)
	matchRefresher.Start()
	defer matchRefresher.Stop()

	tokenCleanup := jobs.NewTokenCleanup(tokenService, cfg.Jobs.TokenCleanupInterval)
	tokenCleanup.Start()
	defer tokenCleanup.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	applicantHandler := handler.NewApplicantHandler(applicantService, matchService)
	shelterHandler := handler.NewShelterHandler(shelterService)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(tokenService)
	optionalAuth := middleware.OptionalAuth(tokenService)
	mux.Handle("POST /v1/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Applicant intake endpoints. Intake is public so people in crisis can
	// self-register without an account.
	mux.HandleFunc("POST /v1/applicants", applicantHandler.Create)
	mux.Handle("GET /v1/applicants", authMiddleware(http.HandlerFunc(applicantHandler.List)))
	mux.HandleFunc("GET /v1/applicants/{applicantId}", applicantHandler.Get)
	mux.HandleFunc("PATCH /v1/applicants/{applicantId}", applicantHandler.Update)
	mux.HandleFunc("GET /v1/applicants/{applicantId}/matches", applicantHandler.Matches)

	// Shelter directory endpoints. Reads are public, writes require staff auth.
	mux.HandleFunc("GET /v1/shelters", shelterHandler.List)
	mux.HandleFunc("GET /v1/shelters/nearby", shelterHandler.Nearby)
	mux.HandleFunc("GET /v1/shelters/{shelterId}", shelterHandler.Get)
	mux.Handle("POST /v1/shelters", authMiddleware(http.HandlerFunc(shelterHandler.Create)))
	mux.Handle("PATCH /v1/shelters/{shelterId}", authMiddleware(http.HandlerFunc(shelterHandler.Update)))
	mux.Handle("DELETE /v1/shelters/{shelterId}", authMiddleware(http.HandlerFunc(shelterHandler.Delete)))

	// Application endpoints. Submission and withdrawal work without an
	// account; status changes beyond withdrawal require shelter staff claims,
	// so the status route uses optional auth and the service checks the actor.
	mux.HandleFunc("POST /v1/applications", applicationHandler.Create)
	mux.HandleFunc("GET /v1/applications/{applicationId}", applicationHandler.Get)
	mux.HandleFunc("GET /v1/applicants/{applicantId}/applications", applicationHandler.ListByApplicant)
	mux.Handle("GET /v1/shelters/{shelterId}/applications", authMiddleware(http.HandlerFunc(applicationHandler.ListByShelter)))
	mux.Handle("PATCH /v1/applications/{applicationId}/status", optionalAuth(http.HandlerFunc(applicationHandler.UpdateStatus)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
