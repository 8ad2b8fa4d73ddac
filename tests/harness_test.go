package tests

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forumhq/forumctl/internal/api"
	"github.com/forumhq/forumctl/internal/command"
	"github.com/forumhq/forumctl/internal/config"
	"github.com/forumhq/forumctl/internal/render"
	"github.com/forumhq/forumctl/internal/session"
	"github.com/forumhq/forumctl/internal/testing/fakeapi"
	"github.com/forumhq/forumctl/internal/upload"
)

// env wires a full client stack against an in-memory backend: durable
// token store, API client, session manager and the command app.
type env struct {
	server    *fakeapi.Server
	client    *api.Client
	session   *session.Manager
	store     *session.Store
	tokenPath string
	out       *bytes.Buffer
	app       *command.App
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return attachEnv(t, fakeapi.New(t), filepath.Join(t.TempDir(), "token"))
}

// attachEnv builds a fresh client stack over an existing backend and token
// file, simulating a process restart when reusing both.
func attachEnv(t *testing.T, server *fakeapi.Server, tokenPath string) *env {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(tokenPath)
	client := api.New(api.Config{
		BaseURL: server.URL(),
		Timeout: 5 * time.Second,
		Store:   store,
		Logger:  logger,
	})
	manager := session.NewManager(session.ManagerConfig{API: client, Logger: logger})
	require.NoError(t, manager.Initialize(context.Background()))

	cfg := &config.Config{
		API:    config.APIConfig{BaseURL: server.URL(), Timeout: 5 * time.Second, PageSize: 10},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20, AllowedTypes: config.DefaultAllowedTypes},
	}

	out := &bytes.Buffer{}
	return &env{
		server:    server,
		client:    client,
		session:   manager,
		store:     store,
		tokenPath: tokenPath,
		out:       out,
		app: &command.App{
			Client:   client,
			Session:  manager,
			Renderer: render.New(out),
			Picker:   upload.NewPicker(cfg.Upload.MaxFileSize, cfg.Upload.AllowedTypes),
			Config:   cfg,
			Logger:   logger,
			Out:      out,
		},
	}
}

func (e *env) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	return e.app.Run(context.Background(), args)
}

// signIn seeds an account and resolves a full session for it.
func (e *env) signIn(t *testing.T, username, password string) {
	t.Helper()
	e.server.SeedUser(username, password)
	require.NoError(t, e.run(t, "login", "--username", username, "--password", password))
}
