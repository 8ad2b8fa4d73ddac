package tests

/*
FEATURE: Authentication & Session Lifecycle
DOMAIN: Forum Client

ACCEPTANCE CRITERIA:
===================

AC-AUTH-001: Login Resolves Session
  GIVEN a registered account
  WHEN the user logs in with correct credentials
  THEN the session is authenticated and the profile is loaded

AC-AUTH-002: Failed Login Leaves No Session
  GIVEN a registered account
  WHEN the user logs in with a wrong password
  THEN no token is held in memory or on disk

AC-AUTH-003: Session Survives Restart
  GIVEN a signed-in user
  WHEN the client restarts against the same token file
  THEN the session is restored without re-entering credentials

AC-AUTH-004: Stale Token Cleared On Restart
  GIVEN a token file the server no longer accepts
  WHEN the client restarts
  THEN the token is cleared everywhere and the session is anonymous

AC-AUTH-005: Expiry Mid-Session
  GIVEN a signed-in user whose token the server rejects
  WHEN any request receives a 401
  THEN the token is cleared and the error reads as a session expiry

AC-AUTH-006: Logout Is Tolerant
  GIVEN a signed-in user
  WHEN the user logs out
  THEN local state is cleared even if the server endpoint misbehaves

AC-AUTH-007: Registration Requires Matching Passwords
  GIVEN a new visitor
  WHEN the confirmation password differs
  THEN registration is rejected before any request is sent
*/

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhq/forumctl/internal/model"
	"github.com/forumhq/forumctl/internal/render"
	"github.com/forumhq/forumctl/internal/session"
)

func TestAuth_LoginResolvesSession(t *testing.T) {
	// AC-AUTH-001: Login Resolves Session
	e := newEnv(t)
	e.signIn(t, "alice", "secret1")

	assert.Equal(t, session.StateAuthenticated, e.session.State())
	require.NotNil(t, e.session.CurrentUser())
	assert.Equal(t, "alice", e.session.CurrentUser().Username)

	token, err := e.store.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, token, "token is persisted durably")
}

func TestAuth_FailedLoginLeavesNoSession(t *testing.T) {
	// AC-AUTH-002: Failed Login Leaves No Session
	e := newEnv(t)
	e.server.SeedUser("alice", "secret1")

	err := e.run(t, "login", "--username", "alice", "--password", "nope")
	require.Error(t, err)
	assert.True(t, model.IsAuthentication(err))

	assert.Empty(t, e.client.Token())
	token, loadErr := e.store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
}

func TestAuth_SessionSurvivesRestart(t *testing.T) {
	// AC-AUTH-003: Session Survives Restart
	e := newEnv(t)
	e.signIn(t, "alice", "secret1")

	restarted := attachEnv(t, e.server, e.tokenPath)
	assert.Equal(t, session.StateAuthenticated, restarted.session.State())
	assert.Equal(t, "alice", restarted.session.CurrentUser().Username)
}

func TestAuth_StaleTokenClearedOnRestart(t *testing.T) {
	// AC-AUTH-004: Stale Token Cleared On Restart
	e := newEnv(t)

	require.NoError(t, e.store.Save("not-a-token-the-server-accepts"))

	restarted := attachEnv(t, e.server, e.tokenPath)
	assert.Equal(t, session.StateUnauthenticated, restarted.session.State())
	assert.Empty(t, restarted.client.Token())

	token, err := restarted.store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "rejected token is removed from disk")
}

func TestAuth_ExpiryMidSession(t *testing.T) {
	// AC-AUTH-005: Expiry Mid-Session
	e := newEnv(t)
	e.signIn(t, "alice", "secret1")

	// Simulate server-side invalidation by handing the client a token the
	// server never signed.
	e.client.SetToken("forged.header.payload")

	_, err := e.client.Forums(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsAuthentication(err))
	assert.Empty(t, e.client.Token(), "401 clears the held token")
	assert.Contains(t, render.Banner(err), "sign in again")
}

func TestAuth_LogoutIsTolerant(t *testing.T) {
	// AC-AUTH-006: Logout Is Tolerant
	e := newEnv(t)
	e.signIn(t, "alice", "secret1")

	require.NoError(t, e.run(t, "logout"))
	assert.Equal(t, session.StateUnauthenticated, e.session.State())
	assert.Nil(t, e.session.CurrentUser())

	token, err := e.store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAuth_RegistrationRequiresMatchingPasswords(t *testing.T) {
	// AC-AUTH-007: Registration Requires Matching Passwords
	e := newEnv(t)

	err := e.run(t, "register",
		"--username", "bob", "--email", "bob@example.com",
		"--password", "secret1", "--confirm", "secret2")
	require.Error(t, err)
	assert.Empty(t, e.server.Requests, "rejected locally, nothing sent")
}
