package command

import (
	"context"
	"fmt"
	"os"

	"github.com/forumhq/forumctl/internal/content"
	"github.com/forumhq/forumctl/internal/model"
)

// commentPageSize is how many comments the post view fetches; the thread
// arrives as a tree, so this counts root comments.
const commentPageSize = 100

// runPost shows the full post view: body with attachments extracted, then
// the comment thread.
func (a *App) runPost(ctx context.Context, args []string) error {
	id, err := parseID(args, "post")
	if err != nil {
		return err
	}

	post, err := a.Client.Post(ctx, id)
	if err != nil {
		return err
	}
	a.Renderer.Post(post)

	comments, err := a.Client.PostComments(ctx, id, 0, commentPageSize)
	if err != nil {
		return err
	}
	a.Renderer.Comments(comments.Content)
	return nil
}

// runPostCreate creates a post, optionally uploading one attachment and
// appending its marker to the body before submission.
func (a *App) runPostCreate(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("post-create")
	forumID := fs.Int64("forum", 0, "forum to post in")
	title := fs.String("title", "", "post title")
	body := fs.String("content", "", "post body")
	attach := fs.String("attach", "", "file to upload and attach")
	if err := fs.Parse(args); err != nil {
		return err
	}

	postBody := *body
	if *attach != "" {
		url, err := a.uploadAttachment(ctx, *attach, nil, nil)
		if err != nil {
			return err
		}
		postBody = content.AppendAttachment(postBody, url)
	}

	req := model.CreatePostRequest{Title: *title, Content: postBody, ForumID: *forumID}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	post, err := a.Client.CreatePost(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Created post %d: %s\n", post.ID, post.Title)
	return nil
}

// runPostEdit submits a partial update; unset flags leave fields unchanged.
func (a *App) runPostEdit(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("post-edit")
	title := fs.String("title", "", "new title")
	body := fs.String("content", "", "new body")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args(), "post")
	if err != nil {
		return err
	}

	var req model.UpdatePostRequest
	if fs.Changed("title") {
		req.Title = title
	}
	if fs.Changed("content") {
		req.Content = body
	}
	if req.Title == nil && req.Content == nil {
		return fmt.Errorf("nothing to change: pass --title or --content")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	post, err := a.Client.UpdatePost(ctx, id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Updated post %d.\n", post.ID)
	return nil
}

// runPostDelete deletes the caller's post.
func (a *App) runPostDelete(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	id, err := parseID(args, "post")
	if err != nil {
		return err
	}

	deleted, err := a.Client.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("post %d was not deleted", id)
	}

	fmt.Fprintf(a.Out, "Deleted post %d.\n", id)
	return nil
}

// uploadAttachment validates a local file with the picker, then uploads it
// and returns the served URL.
func (a *App) uploadAttachment(ctx context.Context, path string, postID, commentID *int64) (string, error) {
	info, err := a.Picker.Inspect(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(info.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	url, err := a.Client.Upload(ctx, info.Filename, f, postID, commentID)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(a.Out, "Uploaded %s (%d bytes): %s\n", info.Filename, info.Size, url)
	return url, nil
}
