// Package session owns the authenticated-session lifecycle.
//
// The session is the one piece of state the client truly owns: a bearer
// token persisted across runs plus the cached profile of the user behind
// it. The Store persists the token; the Manager tracks the lifecycle.
//
// # Lifecycle
//
// A session is always in one of three states:
//
//	Unauthenticated               no usable token
//	AuthenticatedPendingProfile   token adopted, profile fetch unresolved
//	Authenticated                 token and profile both held
//
// The invariant is token-and-user-together-or-neither: a persisted token
// that cannot be confirmed against the backend at startup is cleared
// rather than left half-adopted.
//
// # Usage
//
//	store := session.NewStore(cfg.Session.TokenPath)
//	client := api.New(api.Config{BaseURL: cfg.API.BaseURL, Store: store})
//	manager := session.NewManager(session.ManagerConfig{API: client})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    ...
//	}
//	if manager.IsAuthenticated() {
//	    fmt.Println("signed in as", manager.CurrentUser().Username)
//	}
package session
