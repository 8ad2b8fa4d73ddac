package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forumhq/forumctl/internal/model"
)

// PostComments lists one page of a post's comments. The backend returns
// root comments with their reply trees already assembled.
func (c *Client) PostComments(ctx context.Context, postID int64, page, size int) (*model.PageResponse[*model.Comment], error) {
	q := pageQuery(page, size)
	q.Set("postId", fmt.Sprintf("%d", postID))

	var resp model.PageResponse[*model.Comment]
	if err := c.do(ctx, http.MethodGet, "/comments", q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Content == nil {
		return nil, model.NewMalformedError("comment page response missing content")
	}
	return &resp, nil
}

// CreateComment creates a comment, optionally as a reply when the request
// carries a parent comment id.
func (c *Client) CreateComment(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error) {
	var comment model.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, id int64, req model.UpdateCommentRequest) (*model.Comment, error) {
	var comment model.Comment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment, reporting whether the backend confirmed it.
func (c *Client) DeleteComment(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil, &deleted); err != nil {
		return false, err
	}
	return deleted, nil
}
