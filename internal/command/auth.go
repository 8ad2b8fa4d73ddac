package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/forumhq/forumctl/internal/model"
)

// runLogin signs in and resolves the session before reporting success.
// A token without a profile behind it is not a signed-in session.
func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := model.LoginRequest{Username: *username, Password: *password}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	resp, err := a.Client.Login(ctx, req)
	if err != nil {
		return err
	}

	if err := a.Session.Login(ctx, resp.Token(), resp.User()); err != nil {
		return err
	}

	a.Renderer.Status(a.Session.CurrentUser())
	return nil
}

// runRegister creates an account with a confirmed password and signs in.
func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	username := fs.String("username", "", "desired username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password, repeated")
	displayName := fs.String("display-name", "", "optional display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := model.RegisterRequest{
		Username:    *username,
		Email:       *email,
		Password:    *password,
		DisplayName: *displayName,
	}
	errs := req.Validate()
	if *password != *confirm {
		errs = append(errs, model.FieldError{Field: "confirm", Message: "passwords do not match"})
	}
	if len(errs) > 0 {
		return validationError(errs)
	}

	resp, err := a.Client.Register(ctx, req)
	if err != nil {
		return err
	}

	if err := a.Session.Login(ctx, resp.Token(), resp.User()); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Welcome, %s!\n", a.Session.CurrentUser().Name())
	return nil
}

// runLogout always succeeds locally, whether or not the server cooperates.
func (a *App) runLogout(ctx context.Context, args []string) error {
	a.Session.Logout(ctx)
	fmt.Fprintln(a.Out, "Signed out.")
	return nil
}

// runWhoami prints the session status line.
func (a *App) runWhoami(ctx context.Context, args []string) error {
	a.Renderer.Status(a.Session.CurrentUser())
	if expiry, err := a.Session.TokenExpiry(); err == nil {
		fmt.Fprintf(a.Out, "Session expires %s\n", expiry.Local().Format("Jan 2, 2006 15:04"))
	}
	return nil
}

// runProfile shows the profile card, or updates it when edit flags are set.
func (a *App) runProfile(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("profile")
	displayName := fs.String("display-name", "", "new display name")
	email := fs.String("email", "", "new email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *displayName == "" && *email == "" {
		user := a.Session.CurrentUser()
		if user == nil {
			return errors.New("no profile loaded")
		}
		a.Renderer.Profile(user)
		return nil
	}

	req := model.UpdateProfileRequest{DisplayName: *displayName, Email: *email}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	user, err := a.Client.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	a.Session.UpdateCurrentUser(user)
	fmt.Fprintln(a.Out, "Profile updated.")
	a.Renderer.Profile(user)
	return nil
}
