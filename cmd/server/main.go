// Sahayak - multilingual employment assistant server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pgrkam-labs/sahayak/internal/api"
	"github.com/pgrkam-labs/sahayak/internal/chat"
	"github.com/pgrkam-labs/sahayak/internal/config"
	"github.com/pgrkam-labs/sahayak/internal/identity"
	"github.com/pgrkam-labs/sahayak/internal/llm"
	"github.com/pgrkam-labs/sahayak/internal/middleware"
	"github.com/pgrkam-labs/sahayak/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.GroqModel)

	// Initialize dependencies.
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, err := store.NewMongo(connectCtx, cfg.MongoURI, cfg.DatabaseName)
	connectCancel()
	if err != nil {
		slog.Error("Failed to initialize datastore", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if closeErr := repo.Close(closeCtx); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = repo.Ping(pingCtx)
	pingCancel()
	if err != nil {
		slog.Error("Datastore health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Datastore connected")

	// Initialize services.
	ids := identity.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	completer := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.GroqTimeout)

	var chatOpts []chat.Option
	if cfg.SerializeTurns {
		chatOpts = append(chatOpts, chat.WithSerializedTurns())
		slog.Info("Per-session turn serialization enabled")
	}
	pipeline := chat.NewService(repo, completer, chatOpts...)

	// Initialize handlers.
	baseHandler := api.NewHandler(repo)
	authHandler := api.NewAuthHandler(baseHandler, ids)
	chatHandler := api.NewChatHandler(baseHandler, pipeline)
	userHandler := api.NewUserHandler(baseHandler)
	ttsHandler := api.NewTTSHandler(cfg.ElevenLabsAPIKey)
	healthHandler := api.NewHealthHandler(repo)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Public routes.
	r.Get("/", api.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(ids.Middleware())
				authHandler.RegisterProtectedRoutes(r)
			})
		})

		// Everything else requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(ids.Middleware())
			chatHandler.RegisterRoutes(r)
			userHandler.RegisterRoutes(r)
			ttsHandler.RegisterRoutes(r)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // completion calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
