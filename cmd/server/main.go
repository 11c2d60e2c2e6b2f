package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otcheredev/hms-backend/internal/auth"
	"github.com/otcheredev/hms-backend/internal/cache"
	"github.com/otcheredev/hms-backend/internal/config"
	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/handlers"
	"github.com/otcheredev/hms-backend/internal/middleware"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"github.com/otcheredev/hms-backend/internal/services"
	"github.com/otcheredev/hms-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Hospital Management System API")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Token codec holds the signing secret and TTL for the process lifetime
	codec := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize repositories
	hospitalRepo := repository.NewHospitalRepository()
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize services
	authService := services.NewAuthService(hospitalRepo, userRepo, auditRepo, codec)
	patientService := services.NewPatientService(patientRepo, auditRepo, cacheImpl, cfg.Cache.TTL)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, patientRepo, auditRepo)
	userService := services.NewUserService(userRepo, auditRepo)
	hospitalService := services.NewHospitalService(hospitalRepo, auditRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	userHandler := handlers.NewUserHandler(userService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Public auth endpoints
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected endpoints; the allowed role set for every route is declared
	// here, statically.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(codec))

		r.Route("/patients", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleReceptionist, models.RoleAdmin)).
				Post("/", patientHandler.Create)
			r.Get("/", patientHandler.List)
			r.Get("/search", patientHandler.Search)
			r.Get("/{id}", patientHandler.Get)
			r.With(middleware.RequireRole(models.RoleReceptionist, models.RoleAdmin)).
				Put("/{id}", patientHandler.Update)
		})

		r.Route("/prescriptions", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleDoctor)).
				Post("/", prescriptionHandler.Create)
			r.Get("/", prescriptionHandler.List)
			r.Get("/patient/{patientId}", prescriptionHandler.ListByPatient)
			r.Get("/{id}", prescriptionHandler.Get)
			r.With(middleware.RequireRole(models.RoleDoctor)).
				Put("/{id}", prescriptionHandler.Update)
			r.With(middleware.RequireRole(models.RoleDoctor)).
				Delete("/{id}", prescriptionHandler.Deactivate)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleAdmin)).
				Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.With(middleware.RequireRole(models.RoleAdmin)).
				Delete("/{id}", userHandler.Deactivate)
		})

		r.Route("/hospital", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/", hospitalHandler.Get)
			r.Put("/", hospitalHandler.Update)
			r.Delete("/", hospitalHandler.Deactivate)
			r.Get("/audit", hospitalHandler.ListAudit)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
