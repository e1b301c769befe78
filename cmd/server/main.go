package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsage/backend/internal/config"
	"github.com/skillsage/backend/internal/server/handlers"
	"github.com/skillsage/backend/internal/server/middleware"
	"github.com/skillsage/backend/internal/server/storage/sqlite"
	"github.com/skillsage/backend/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	tokens := token.Config{
		AccessKey:  []byte(cfg.AccessTokenKey),
		RefreshKey: []byte(cfg.RefreshTokenKey),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(logger, store, tokens),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// newHandler wires routes and the middleware chain. The access gate wraps
// only the protected routes; recovery, logging and rate limiting wrap
// everything.
func newHandler(logger *slog.Logger, store *sqlite.Storage, tokens token.Config) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, tokens)
	postsHandler := handlers.NewPostsHandler(logger, store)
	commentsHandler := handlers.NewCommentsHandler(logger, store)
	categoriesHandler := handlers.NewCategoriesHandler(logger, store)
	likesHandler := handlers.NewLikesHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger)

	gate := middleware.AuthMiddleware(logger, tokens.AccessKey)
	gated := func(h http.HandlerFunc) http.Handler {
		return gate(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler.Health)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/password-reset", authHandler.PasswordReset)
	mux.HandleFunc("POST /api/auth/refresh-token", authHandler.Refresh)
	mux.Handle("GET /api/auth/profile", gated(authHandler.Profile))
	mux.HandleFunc("PUT /api/auth/profile", authHandler.UpdateProfile)

	mux.Handle("POST /api/posts", gated(postsHandler.Create))
	mux.Handle("GET /api/posts", gated(postsHandler.List))
	mux.Handle("GET /api/posts/{id}", gated(postsHandler.Get))
	mux.Handle("PUT /api/posts/{id}", gated(postsHandler.Update))
	mux.Handle("DELETE /api/posts/{id}", gated(postsHandler.Delete))

	mux.Handle("POST /api/comments", gated(commentsHandler.Create))
	mux.Handle("GET /api/comments", gated(commentsHandler.List))
	mux.Handle("GET /api/comments/{id}", gated(commentsHandler.Get))
	mux.Handle("PUT /api/comments/{id}", gated(commentsHandler.Update))
	mux.Handle("DELETE /api/comments/{id}", gated(commentsHandler.Delete))

	mux.Handle("POST /api/categories", gated(categoriesHandler.Create))
	mux.Handle("GET /api/categories", gated(categoriesHandler.List))
	mux.Handle("PUT /api/categories/{id}", gated(categoriesHandler.Update))
	mux.Handle("DELETE /api/categories/{id}", gated(categoriesHandler.Delete))

	mux.Handle("POST /api/likes", gated(likesHandler.Create))
	mux.Handle("GET /api/likes", gated(likesHandler.Get))
	mux.Handle("PUT /api/likes", gated(likesHandler.Update))
	mux.Handle("DELETE /api/likes", gated(likesHandler.Delete))

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(rateLimitRequests, rateLimitWindow, logger)(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return handler
}

func printVersion() {
	fmt.Printf("SkillSage API Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
