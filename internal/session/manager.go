package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forumhq/forumctl/internal/model"
)

// State describes where the session sits in its lifecycle
type State string

const (
	// StateUnauthenticated means no usable token is held.
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticatedPendingProfile means a token was adopted but the
	// profile fetch has not succeeded yet. Consumers must not treat this
	// as a fully resolved session.
	StateAuthenticatedPendingProfile State = "pending_profile"
	// StateAuthenticated means both token and profile are held.
	StateAuthenticated State = "authenticated"
)

// ===== Session Errors =====
var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrNoToken          = errors.New("no token held")
)

// API is the slice of the client the manager drives.
type API interface {
	Initialize() (bool, error)
	SetToken(token string)
	ClearToken()
	Token() string
	CurrentUser(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context)
}

// Manager owns the authenticated-session state for the process. A session
// holds either both a token and a user, or neither; the transitional
// pending-profile state is modeled explicitly rather than reported as
// authenticated.
type Manager struct {
	api    API
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	user    *model.User
	loading bool
}

// ManagerConfig holds manager construction settings
type ManagerConfig struct {
	API    API
	Logger *slog.Logger
}

// NewManager creates a session manager in the unauthenticated state.
func NewManager(cfg ManagerConfig) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		api:     cfg.API,
		logger:  logger,
		state:   StateUnauthenticated,
		loading: true,
	}
}

// Initialize rehydrates the session at startup: adopt a persisted token,
// then confirm it by fetching the profile. A token that cannot be confirmed
// is cleared so the session never reports a token without a known user.
// The loading flag stays true until initialization settles.
func (m *Manager) Initialize(ctx context.Context) error {
	defer m.settle()

	found, err := m.api.Initialize()
	if err != nil {
		return err
	}
	if !found {
		m.set(StateUnauthenticated, nil)
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("persisted token rejected, clearing session", slog.String("error", err.Error()))
		m.api.ClearToken()
		m.set(StateUnauthenticated, nil)
		return nil
	}

	m.set(StateAuthenticated, user)
	m.logger.Debug("session restored", slog.String("username", user.Username))
	return nil
}

// Login adopts a freshly issued token and resolves the profile behind it.
// seed, when non-nil, is the provisional profile carried by the auth
// response; it is shown while the confirming fetch is in flight. Until
// that fetch succeeds the session reports pending-profile, never
// authenticated. A 401 on the fetch means the token was already dropped
// by the client, so the session falls back to unauthenticated rather than
// reporting an adopted token it no longer holds.
func (m *Manager) Login(ctx context.Context, token string, seed *model.User) error {
	m.api.SetToken(token)
	m.set(StateAuthenticatedPendingProfile, seed)

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if model.IsAuthentication(err) {
			m.logger.Warn("freshly issued token rejected", slog.String("error", err.Error()))
			m.set(StateUnauthenticated, nil)
			return err
		}
		m.logger.Warn("profile fetch after login failed", slog.String("error", err.Error()))
		return err
	}

	m.set(StateAuthenticated, user)
	return nil
}

// Logout invalidates the server session on a best-effort basis and clears
// local state unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.api.Logout(ctx)
	m.set(StateUnauthenticated, nil)
}

// UpdateCurrentUser replaces the cached profile after a profile edit.
func (m *Manager) UpdateCurrentUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticated {
		m.user = user
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the cached profile: the confirmed one when
// authenticated, the provisional one while pending, nil when signed out.
func (m *Manager) CurrentUser() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether the session is fully resolved.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Loading reports whether startup initialization is still in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// TokenExpiry peeks at the bearer token's exp claim without verifying the
// signature; verification belongs to the server. Tokens that are not JWTs
// or carry no expiry return ErrNoToken.
func (m *Manager) TokenExpiry() (time.Time, error) {
	token := m.api.Token()
	if token == "" {
		return time.Time{}, ErrNoToken
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrNoToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoToken
	}
	return claims.ExpiresAt.Time, nil
}

func (m *Manager) set(state State, user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
}

func (m *Manager) settle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
}
