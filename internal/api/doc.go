// Package api implements the HTTP client for the forum backend.
//
// The api package is the single point of contact with the server: it owns
// the bearer token, attaches it to every outgoing request, and maps wire
// failures into the model error taxonomy. One method exists per backend
// endpoint.
//
// # Construction
//
//	client := api.New(api.Config{
//	    BaseURL: cfg.API.BaseURL,
//	    Timeout: cfg.API.Timeout,
//	    Store:   session.NewStore(cfg.Session.TokenPath),
//	})
//	found, err := client.Initialize() // adopt a persisted token, no network
//
// # Token Lifecycle
//
// The token moves Absent -> Present on SetToken (called internally by Login
// and Register) and Present -> Absent on ClearToken, on any 401 response,
// or on a failed login/register. The durable store is authoritative; the
// in-memory copy is seeded from it once at Initialize.
//
// # Errors
//
// Every method surfaces failures to its caller; Logout's best-effort
// server-side invalidation is the sole intentional exception. Callers
// branch on kinds:
//
//	posts, err := client.Posts(ctx, forumID, 0, 10)
//	if model.IsAuthentication(err) {
//	    // token was cleared, prompt for login
//	}
package api
