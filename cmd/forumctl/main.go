package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/forumhq/forumctl/internal/api"
	"github.com/forumhq/forumctl/internal/command"
	"github.com/forumhq/forumctl/internal/config"
	"github.com/forumhq/forumctl/internal/render"
	"github.com/forumhq/forumctl/internal/session"
	"github.com/forumhq/forumctl/internal/upload"
)

func main() {
	// A local .env is convenient during development; absence is fine.
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("forumctl", pflag.ContinueOnError)
	fs.String("server", "", "backend base URL, /api included")
	fs.Int("page-size", 0, "posts per page")
	fs.Duration("timeout", 0, "request timeout")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg, *verbose)
	slog.SetDefault(logger)

	// Interactive tool: a signal cancels in-flight requests and exits.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.Session.TokenPath)
	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Store:   store,
		Logger:  logger,
	})
	manager := session.NewManager(session.ManagerConfig{API: client, Logger: logger})
	if err := manager.Initialize(ctx); err != nil {
		logger.Warn("session initialization failed", slog.String("error", err.Error()))
	}

	app := &command.App{
		Client:   client,
		Session:  manager,
		Renderer: render.New(os.Stdout),
		Picker:   upload.NewPicker(cfg.Upload.MaxFileSize, cfg.Upload.AllowedTypes),
		Config:   cfg,
		Logger:   logger,
		Out:      os.Stdout,
	}

	if err := app.Run(ctx, fs.Args()); err != nil {
		fmt.Fprintln(os.Stderr, render.Banner(err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	// Logs go to stderr so rendered views stay pipeable.
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
