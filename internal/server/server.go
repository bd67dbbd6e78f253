// Package server is the composition root: it opens the database, builds the
// services and handlers, and maps them to routes.
//
//	config.Config → sqlite.DB → [cache] → ArticleService → ArticleHandler
//	              ↘ TokenService + PasswordService → AuthService → AuthHandler
//
// Each layer only receives what it needs. The service gets the repository
// interface, not *sqlite.DB; handlers get services, never the database.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sakif/articles/internal/auth"
	"github.com/sakif/articles/internal/config"
	"github.com/sakif/articles/internal/handler"
	"github.com/sakif/articles/internal/middleware"
	"github.com/sakif/articles/internal/repository"
	"github.com/sakif/articles/internal/repository/cache"
	sqliteRepo "github.com/sakif/articles/internal/repository/sqlite"
	"github.com/sakif/articles/internal/service"
)

// Server owns the router and the database connection. The database is
// closed when Start returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and wires every route.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is not mistaken for the
// modernc.org/sqlite driver.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RoutesDoc renders every mounted route as Markdown.
func (s *Server) RoutesDoc() string {
	return docgen.MarkdownRoutesDoc(s.router, docgen.MarkdownOpts{
		ProjectPath: "github.com/sakif/articles",
		Intro:       "Routes served by the articles API.",
	})
}

// Close releases the database. Start calls it on the way out; tests that
// never Start call it themselves.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /healthz          → DB ping
//	GET    /metrics          → Prometheus exposition
//	POST   /auth/login       → issue token           (only when auth is enabled)
//	POST   /auth/logout      → clear token cookie    (only when auth is enabled)
//	GET    /articles         → list
//	POST   /articles         → create                [write]
//	GET    /articles/{id}    → get
//	PATCH  /articles/{id}    → partial update        [write]
//	DELETE /articles/{id}    → delete                [write]
//
// [write] routes require a token when JWT_SECRET is set.
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID runs first so the logger can see the id
//  2. RealIP, before anything that looks at the client address, and only
//     when TRUST_PROXY_HEADERS is set
//  3. Logger, which also records request latency
//  4. Recoverer, inside Logger so a recovered panic is logged as a 500
//  5. CORS, only when CORS_ALLOWED_ORIGINS is set
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	if s.config.TrustProxyHeaders {
		s.router.Use(chimiddleware.RealIP)
	}
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	if len(s.config.CORSAllowedOrigins) > 0 {
		s.router.Use(cors.New(cors.Options{
			AllowedOrigins:   s.config.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Location"},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}

	var repo repository.ArticleRepository = s.db
	if s.config.CacheSize > 0 {
		repo = cache.New(s.db, s.config.CacheSize, s.config.CacheTTL)
	}

	articleService := service.NewArticleService(repo, s.logger)

	s.router.Get("/healthz", handler.NewHealthHandler(articleService, s.logger).HandleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	var guard func(http.Handler) http.Handler
	if s.config.AuthEnabled() {
		tokens, err := auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}

		authService := service.NewAuthService(
			tokens,
			auth.NewPasswordService(),
			s.config.AdminPasswordHash,
			s.logger,
		)
		authHandler := handler.NewAuthHandler(authService, tokens.TTL(), s.logger)

		loginLimit := middleware.RateLimit(
			s.config.LoginRateInterval,
			s.config.LoginRateBurst,
			1024,
			time.Hour,
		)

		s.router.Mount("/auth", authHandler.Routes(loginLimit))
		guard = auth.RequireAuth(authService)
	}

	articleHandler := handler.NewArticleHandler(articleService, s.logger)
	s.router.Mount("/articles", articleHandler.Routes(guard))

	return nil
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully:
//  1. Stop accepting new connections
//  2. Wait up to SHUTDOWN_TIMEOUT for in-flight requests
//  3. Close the database (flushes the WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.Bool("auth", s.config.AuthEnabled()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
