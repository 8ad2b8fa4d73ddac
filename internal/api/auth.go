package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/forumhq/forumctl/internal/model"
)

// Login exchanges credentials for a bearer token. On success the token is
// adopted and persisted, and the returned response carries the token under
// both field names the backend has used. On any failure the active token is
// cleared so a failed login cannot leave a stale session behind.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		c.ClearToken()
		// The backend answers a rejected login request with 400 as well as
		// 401; both mean the credentials did not produce a session.
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return nil, &model.APIError{Kind: model.KindAuthentication, Status: apiErr.Status, Detail: apiErr.Detail}
		}
		return nil, err
	}

	token := resp.Token()
	if token == "" {
		c.ClearToken()
		return nil, model.NewAuthenticationError("login response carried no token")
	}

	c.SetToken(token)
	resp.AccessToken = token
	resp.TokenField = token
	c.logger.Info("logged in", slog.String("username", resp.Username))
	return &resp, nil
}

// Register creates an account and adopts the returned token, mirroring
// Login's fail-closed behavior.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		c.ClearToken()
		return nil, err
	}

	token := resp.Token()
	if token == "" {
		c.ClearToken()
		return nil, model.NewAuthenticationError("register response carried no token")
	}

	c.SetToken(token)
	resp.AccessToken = token
	resp.TokenField = token
	return &resp, nil
}

// Logout invalidates the server-side session on a best-effort basis, then
// unconditionally clears the local token. The invalidation call is the one
// place a failure is swallowed: some backend builds never shipped the
// endpoint.
func (c *Client) Logout(ctx context.Context) {
	if c.token != "" {
		if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
			c.logger.Debug("logout endpoint unavailable", slog.String("error", err.Error()))
		}
	}
	c.ClearToken()
}

// CurrentUser fetches the profile behind the active token. A 401 clears
// the token and propagates; the caller owns any session-state cleanup.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile submits a profile edit and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/users/me", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
