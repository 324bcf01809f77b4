// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/contactdesk/internal/config"
	"github.com/olegiv/contactdesk/internal/contactapi"
	"github.com/olegiv/contactdesk/internal/contacts"
	"github.com/olegiv/contactdesk/internal/handler"
	"github.com/olegiv/contactdesk/internal/logging"
	"github.com/olegiv/contactdesk/internal/middleware"
	"github.com/olegiv/contactdesk/internal/render"
	"github.com/olegiv/contactdesk/internal/scheduler"
	"github.com/olegiv/contactdesk/internal/session"
	"github.com/olegiv/contactdesk/internal/tui"
	"github.com/olegiv/contactdesk/internal/version"
	"github.com/olegiv/contactdesk/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	useTUI := flag.Bool("tui", false, "Run the terminal UI instead of the web server")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "contactdesk - admin manager for contact form submissions\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_SESSION_SECRET   Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_API_BASE_URL     Contacts API root (default: %s)\n", config.DefaultAPIBaseURL)
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_SCREEN_TTL       Idle screen lifetime (default: 2h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTACTDESK_LOG_FILE         Rotating log file (the only log output with -tui)\n")
	}

	flag.Parse()

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info, *useTUI); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info, useTUI bool) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logOut, logCloser := logging.Output(cfg.LogFile, useTUI)
	defer func() { _ = logCloser.Close() }()

	logger := logging.New(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	client, err := contactapi.New(cfg.APIBaseURL,
		contactapi.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
		contactapi.WithUserAgent(info.UserAgent()),
		contactapi.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}
	slog.Info("contacts api configured", "base_url", client.BaseURL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useTUI {
		return tui.Run(ctx, contacts.NewScreen(client, logger))
	}
	return serve(ctx, cfg, info, client, logger)
}

func serve(ctx context.Context, cfg *config.Config, info version.Info, store contacts.Store, logger *slog.Logger) error {
	isDev := cfg.IsDevelopment()

	registry := contacts.NewRegistry(func() *contacts.Screen {
		return contacts.NewScreen(store, logger)
	}, cfg.ScreenTTL)

	sched := scheduler.New(logger)
	if err := sched.Add("screen-sweep", cfg.SweepSchedule, func() {
		if n := registry.Sweep(); n > 0 {
			slog.Info("idle screens removed", "category", logging.CategorySystem, "count", n, "remaining", registry.Len())
		}
	}); err != nil {
		return fmt.Errorf("scheduling screen sweep: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	sessionManager := session.New(cfg.ScreenTTL, isDev)
	slog.Info("session manager initialized", "lifetime", cfg.ScreenTTL)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		Version:        info.Short(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	contactsHandler := handler.NewContactsHandler(registry, renderer, sessionManager)
	healthHandler := handler.NewHealthHandler(registry, info.Short())
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticMaxAge := 24 * time.Hour
	if isDev {
		staticMaxAge = 0
	}
	r.Handle("/static/*", middleware.StaticCache(staticMaxAge)(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	))

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey(), isDev, cfg.ServerPort)))

		r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, handler.RouteContacts, http.StatusSeeOther)
		})
		contactsHandler.Mount(r, limiter.Middleware)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
