package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/forumhq/forumctl/internal/api"
	"github.com/forumhq/forumctl/internal/config"
	"github.com/forumhq/forumctl/internal/model"
	"github.com/forumhq/forumctl/internal/render"
	"github.com/forumhq/forumctl/internal/session"
	"github.com/forumhq/forumctl/internal/upload"
)

// App wires the client, session and renderer together and dispatches one
// command per invocation. Each command maps to one screen of the forum:
// home, login, register, the forum list, a forum's posts, a post with its
// comment thread, and the profile.
type App struct {
	Client   *api.Client
	Session  *session.Manager
	Renderer *render.Renderer
	Picker   *upload.Picker
	Config   *config.Config
	Logger   *slog.Logger
	Out      io.Writer
}

// handler runs one command with its already-split arguments.
type handler struct {
	run     func(ctx context.Context, args []string) error
	usage   string
	summary string
}

func (a *App) handlers() map[string]handler {
	return map[string]handler{
		"home":     {a.runHome, "home", "show the forum landing page"},
		"login":    {a.runLogin, "login --username NAME --password PASS", "sign in"},
		"register": {a.runRegister, "register --username NAME --email ADDR --password PASS --confirm PASS", "create an account and sign in"},
		"logout":   {a.runLogout, "logout", "sign out"},
		"whoami":   {a.runWhoami, "whoami", "show the signed-in user"},
		"profile":  {a.runProfile, "profile [--display-name NAME] [--email ADDR]", "show or update your profile"},

		"forums":       {a.runForums, "forums", "list all forums"},
		"forum":        {a.runForum, "forum ID [--page N]", "show a forum and its posts"},
		"forum-create": {a.runForumCreate, "forum-create --name NAME [--description TEXT]", "create a forum"},

		"post":        {a.runPost, "post ID", "show a post with comments and attachments"},
		"post-create": {a.runPostCreate, "post-create --forum ID --title TEXT --content TEXT [--attach FILE]", "create a post"},
		"post-edit":   {a.runPostEdit, "post-edit ID [--title TEXT] [--content TEXT]", "edit your post"},
		"post-delete": {a.runPostDelete, "post-delete ID", "delete your post"},

		"comment":        {a.runComment, "comment --post ID [--reply-to COMMENT] --content TEXT", "comment on a post"},
		"comment-edit":   {a.runCommentEdit, "comment-edit ID --content TEXT", "edit your comment"},
		"comment-delete": {a.runCommentDelete, "comment-delete ID", "delete your comment"},

		"upload": {a.runUpload, "upload FILE [--post ID | --comment ID]", "upload an attachment"},
	}
}

// Run dispatches args[0] to its command. An unknown command prints the
// command list and fails, the closest thing a terminal has to a 404 page.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.printHelp()
		return nil
	}

	h, ok := a.handlers()[args[0]]
	if !ok {
		fmt.Fprintf(a.Out, "Page not found: forumctl has no %q command.\n\n", args[0])
		a.printHelp()
		return fmt.Errorf("unknown command %q", args[0])
	}

	a.Logger.Debug("running command", slog.String("command", args[0]))
	return h.run(ctx, args[1:])
}

func (a *App) printHelp() {
	fmt.Fprintln(a.Out, "Usage: forumctl COMMAND [flags]")
	fmt.Fprintln(a.Out)

	handlers := a.handlers()
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.Out, "  %-40s %s\n", handlers[name].usage, handlers[name].summary)
	}
}

// newFlagSet builds a per-command flag set that reports errors instead of
// exiting the process.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// requireAuth guards commands behind a resolved session, the command-line
// analogue of redirecting an anonymous visitor to the login page.
func (a *App) requireAuth() error {
	if !a.Session.IsAuthenticated() {
		fmt.Fprintln(a.Out, "You need to sign in first: forumctl login --username NAME --password PASS")
		return session.ErrNotAuthenticated
	}
	return nil
}

// validationError folds form field errors into a single client-side
// validation failure, printed one field per line.
func validationError(errs []model.FieldError) error {
	lines := make([]string, len(errs))
	for i, fieldErr := range errs {
		lines[i] = fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message)
	}
	return &model.APIError{Kind: model.KindValidation, Detail: strings.Join(lines, "; ")}
}

// parseID reads a positional numeric id argument.
func parseID(args []string, what string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s id is required", what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid %s id", args[0], what)
	}
	return id, nil
}
