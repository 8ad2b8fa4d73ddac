package command

import (
	"context"
	"fmt"

	"github.com/forumhq/forumctl/internal/content"
	"github.com/forumhq/forumctl/internal/model"
)

// runComment adds a comment to a post, or a reply under another comment
// when --reply-to is given. The thread is fetched once, before the
// submission; the created comment then joins the in-memory tree under its
// parent and the updated thread is rendered without a second fetch.
func (a *App) runComment(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("comment")
	postID := fs.Int64("post", 0, "post to comment on")
	replyTo := fs.Int64("reply-to", 0, "comment to reply under")
	body := fs.String("content", "", "comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := model.CreateCommentRequest{Content: *body, PostID: *postID}
	if *replyTo > 0 {
		req.ParentCommentID = replyTo
	}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	page, err := a.Client.PostComments(ctx, *postID, 0, commentPageSize)
	if err != nil {
		return err
	}
	thread := page.Content

	if req.ParentCommentID != nil && content.FindComment(thread, *req.ParentCommentID) == nil {
		return &model.APIError{
			Kind:   model.KindNotFound,
			Detail: fmt.Sprintf("comment %d not found on post %d", *req.ParentCommentID, *postID),
		}
	}

	comment, err := a.Client.CreateComment(ctx, req)
	if err != nil {
		return err
	}

	if comment.ParentCommentID != nil {
		content.InsertReply(thread, *comment.ParentCommentID, comment)
		fmt.Fprintf(a.Out, "Added reply %d under comment %d.\n", comment.ID, *comment.ParentCommentID)
	} else {
		thread = append(thread, comment)
		fmt.Fprintf(a.Out, "Added comment %d.\n", comment.ID)
	}

	a.Renderer.Comments(thread)
	return nil
}

// runCommentEdit replaces the comment's content.
func (a *App) runCommentEdit(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("comment-edit")
	body := fs.String("content", "", "new comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args(), "comment")
	if err != nil {
		return err
	}

	req := model.UpdateCommentRequest{Content: *body}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	comment, err := a.Client.UpdateComment(ctx, id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Updated comment %d.\n", comment.ID)
	return nil
}

// runCommentDelete deletes the caller's comment; its replies survive on
// the server side.
func (a *App) runCommentDelete(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	id, err := parseID(args, "comment")
	if err != nil {
		return err
	}

	deleted, err := a.Client.DeleteComment(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("comment %d was not deleted", id)
	}

	fmt.Fprintf(a.Out, "Deleted comment %d.\n", id)
	return nil
}
