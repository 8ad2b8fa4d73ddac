package command

import (
	"context"
	"fmt"

	"github.com/forumhq/forumctl/internal/model"
)

const (
	homeForumCount = 3
	homePostCount  = 5
)

// runHome renders the landing page. Visitors get a welcome and pointers to
// login and register; signed-in users get a snapshot of the community: up
// to three forums and the latest posts from the first of them.
func (a *App) runHome(ctx context.Context, args []string) error {
	if !a.Session.IsAuthenticated() {
		fmt.Fprintln(a.Out, "Welcome to the forum.")
		fmt.Fprintln(a.Out)
		fmt.Fprintln(a.Out, "Sign in to join the discussion:")
		fmt.Fprintln(a.Out, "  forumctl login --username NAME --password PASS")
		fmt.Fprintln(a.Out, "  forumctl register --username NAME --email ADDR --password PASS --confirm PASS")
		return nil
	}

	a.Renderer.Status(a.Session.CurrentUser())
	fmt.Fprintln(a.Out)

	forums, err := a.Client.Forums(ctx)
	if err != nil {
		return err
	}
	if len(forums) > homeForumCount {
		forums = forums[:homeForumCount]
	}
	a.Renderer.Forums(forums)

	if len(forums) == 0 {
		return nil
	}

	posts, err := a.Client.Posts(ctx, forums[0].ID, 0, homePostCount)
	if err != nil {
		return err
	}
	if len(posts.Content) > 0 {
		fmt.Fprintf(a.Out, "\nLatest in %s:\n", forums[0].Name)
		a.Renderer.Posts(posts)
	}
	return nil
}

// runForums lists all forums.
func (a *App) runForums(ctx context.Context, args []string) error {
	forums, err := a.Client.Forums(ctx)
	if err != nil {
		return err
	}
	a.Renderer.Forums(forums)
	return nil
}

// runForum shows one forum and a page of its posts.
func (a *App) runForum(ctx context.Context, args []string) error {
	fs := newFlagSet("forum")
	page := fs.Int("page", 1, "page of posts, starting at 1")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args(), "forum")
	if err != nil {
		return err
	}

	forum, err := a.Client.Forum(ctx, id)
	if err != nil {
		return err
	}
	a.Renderer.Forum(forum)
	fmt.Fprintln(a.Out)

	posts, err := a.Client.Posts(ctx, id, *page-1, a.Config.API.PageSize)
	if err != nil {
		return err
	}
	a.Renderer.Posts(posts)
	return nil
}

// runForumCreate creates a forum; any signed-in user may do so.
func (a *App) runForumCreate(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("forum-create")
	name := fs.String("name", "", "forum name")
	description := fs.String("description", "", "forum description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := model.CreateForumRequest{Name: *name, Description: *description}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	forum, err := a.Client.CreateForum(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Created forum %d: %s\n", forum.ID, forum.Name)
	return nil
}
