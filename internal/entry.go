// Package internal provides the main application initialization and runtime logic.
package internal

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
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dr-yst/org-x/internal/api"
	"github.com/dr-yst/org-x/internal/docservice"
	"github.com/dr-yst/org-x/internal/mcpserver"
	"github.com/dr-yst/org-x/internal/metadata"
	"github.com/dr-yst/org-x/internal/monitor"
	"github.com/dr-yst/org-x/internal/parser"
	"github.com/dr-yst/org-x/internal/repository"
	"github.com/dr-yst/org-x/internal/search"
	"github.com/dr-yst/org-x/internal/sse"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. In MCP mode stdout carries the
	// protocol, so logs go to stderr.
	logOut := os.Stdout
	if app.mcpMode {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.Int("paths", len(cfg.Documents.Paths)),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Search index (optional).
	var index *search.DB
	if cfg.Search.Enabled() {
		var err error
		index, err = search.Open(cfg.Search.DSN)
		if err != nil {
			return fmt.Errorf("init search index: %w", err)
		}
		defer index.Close()
	}

	// SSE broker.
	var broker *sse.Broker
	if !app.mcpMode {
		broker = sse.NewBroker(2 * time.Second)
		defer broker.Close()
	}

	// Document store and derived views.
	store := repository.NewStore()
	meta := metadata.NewService()
	svc := docservice.NewService(store, meta, index, broker, logger)

	// Parse options are fixed here once; the monitor never reads
	// configuration while handling events.
	var parseOpts []parser.Option
	if !cfg.Documents.Todo.Empty() {
		parseOpts = append(parseOpts, parser.WithTodoKeywords(cfg.Documents.Todo.Active, cfg.Documents.Todo.Closed))
	}
	if len(cfg.Documents.CustomProperties) > 0 {
		parseOpts = append(parseOpts, parser.WithCustomProperties(cfg.Documents.CustomProperties))
	}

	mon := monitor.New(store,
		monitor.WithLogger(logger),
		monitor.WithDebounce(cfg.Documents.Debounce()),
		monitor.WithParseOptions(parseOpts...),
	)
	for _, p := range cfg.Documents.Paths {
		if err := mon.AddPath(p.Monitored()); err != nil {
			return fmt.Errorf("add path: %w", err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Consume monitor changes into the derived views.
	g.Go(func() error {
		if err := svc.Run(gCtx, mon.Changes()); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	// The initial scan inside Start feeds the change channel, which the
	// consumer above turns into derived-view registrations; no separate
	// seeding pass.
	if err := mon.Start(gCtx); err != nil {
		return fmt.Errorf("start monitor: %w", err)
	}
	defer mon.Stop()

	if app.mcpMode {
		return runMCP(gCtx, g, svc, logger)
	}
	return runHTTP(gCtx, g, cfg, svc, broker, logger)
}

func runMCP(ctx context.Context, g *errgroup.Group, svc *docservice.Service, logger *slog.Logger) error {
	logger.Info("Starting MCP server on stdio")

	g.Go(func() error {
		if err := mcpserver.New(svc).ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func runHTTP(ctx context.Context, g *errgroup.Group, cfg *Config, svc *docservice.Service, broker *sse.Broker, logger *slog.Logger) error {
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-ctx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
