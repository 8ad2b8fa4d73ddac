package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhq/forumctl/internal/api"
	"github.com/forumhq/forumctl/internal/model"
	"github.com/forumhq/forumctl/internal/testing/fakeapi"
)

func newManager(t *testing.T, server *fakeapi.Server) (*Manager, *api.Client, *Store) {
	t.Helper()
	store := NewStore(t.TempDir() + "/token")
	client := api.New(api.Config{BaseURL: server.URL(), Store: store})
	manager := NewManager(ManagerConfig{API: client})
	return manager, client, store
}

func TestManager_Initialize_NoToken(t *testing.T) {
	server := fakeapi.New(t)
	manager, _, _ := newManager(t, server)

	require.True(t, manager.Loading(), "loading until initialization settles")
	require.NoError(t, manager.Initialize(context.Background()))

	assert.False(t, manager.Loading())
	assert.Equal(t, StateUnauthenticated, manager.State())
	assert.Nil(t, manager.CurrentUser())
}

func TestManager_Initialize_RestoresValidSession(t *testing.T) {
	server := fakeapi.New(t)
	alice := server.SeedUser("alice", "secret123")
	manager, _, store := newManager(t, server)

	require.NoError(t, store.Save(server.IssueToken(alice)))
	require.NoError(t, manager.Initialize(context.Background()))

	assert.Equal(t, StateAuthenticated, manager.State())
	require.NotNil(t, manager.CurrentUser())
	assert.Equal(t, "alice", manager.CurrentUser().Username)
}

func TestManager_Initialize_RejectedTokenClearsSession(t *testing.T) {
	server := fakeapi.New(t)
	manager, client, store := newManager(t, server)

	require.NoError(t, store.Save("garbage-token"))
	require.NoError(t, manager.Initialize(context.Background()))

	assert.Equal(t, StateUnauthenticated, manager.State())
	assert.Empty(t, client.Token(), "unconfirmed token must be cleared")

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted, "durable copy cleared too")
}

func TestManager_Login_ResolvesProfile(t *testing.T) {
	server := fakeapi.New(t)
	alice := server.SeedUser("alice", "secret123")
	manager, _, _ := newManager(t, server)

	require.NoError(t, manager.Login(context.Background(), server.IssueToken(alice), nil))

	assert.Equal(t, StateAuthenticated, manager.State())
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, "alice", manager.CurrentUser().Username)
}

func TestManager_Login_RejectedTokenFallsBackToUnauthenticated(t *testing.T) {
	server := fakeapi.New(t)
	manager, client, _ := newManager(t, server)

	err := manager.Login(context.Background(), "token-nobody-issued", &model.User{Username: "ghost"})
	require.Error(t, err)
	assert.True(t, model.IsAuthentication(err))

	// The client dropped the token on the 401; the state must agree.
	assert.Equal(t, StateUnauthenticated, manager.State())
	assert.Empty(t, client.Token())
	assert.Nil(t, manager.CurrentUser())
}

func TestManager_Login_UnreachableServerStaysPendingWithSeed(t *testing.T) {
	store := NewStore(t.TempDir() + "/token")
	client := api.New(api.Config{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second, Store: store})
	manager := NewManager(ManagerConfig{API: client})

	seed := &model.User{Username: "alice", DisplayName: "Alice A"}
	err := manager.Login(context.Background(), "token-from-auth-response", seed)
	require.Error(t, err)
	assert.True(t, model.IsNetwork(err))

	// The token may still be good; the provisional profile bridges the gap.
	assert.Equal(t, StateAuthenticatedPendingProfile, manager.State())
	assert.False(t, manager.IsAuthenticated(), "pending profile must not read as authenticated")
	require.NotNil(t, manager.CurrentUser())
	assert.Equal(t, "Alice A", manager.CurrentUser().Name())
}

func TestManager_Logout_ClearsEverything(t *testing.T) {
	server := fakeapi.New(t)
	alice := server.SeedUser("alice", "secret123")
	manager, client, store := newManager(t, server)

	require.NoError(t, manager.Login(context.Background(), server.IssueToken(alice), nil))
	manager.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, manager.State())
	assert.Nil(t, manager.CurrentUser())
	assert.Empty(t, client.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestManager_UpdateCurrentUser(t *testing.T) {
	server := fakeapi.New(t)
	alice := server.SeedUser("alice", "secret123")
	manager, _, _ := newManager(t, server)
	require.NoError(t, manager.Login(context.Background(), server.IssueToken(alice), nil))

	manager.UpdateCurrentUser(&model.User{ID: alice.ID, Username: "alice", DisplayName: "Alice A."})
	assert.Equal(t, "Alice A.", manager.CurrentUser().DisplayName)
}

func TestManager_UpdateCurrentUser_IgnoredWhenSignedOut(t *testing.T) {
	server := fakeapi.New(t)
	manager, _, _ := newManager(t, server)
	require.NoError(t, manager.Initialize(context.Background()))

	manager.UpdateCurrentUser(&model.User{Username: "ghost"})
	assert.Nil(t, manager.CurrentUser())
}

func TestManager_TokenExpiry(t *testing.T) {
	server := fakeapi.New(t)
	alice := server.SeedUser("alice", "secret123")
	manager, _, _ := newManager(t, server)

	_, err := manager.TokenExpiry()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, manager.Login(context.Background(), server.IssueToken(alice), nil))

	expiry, err := manager.TokenExpiry()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}
