package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forumhq/forumctl/internal/model"
)

// Posts lists one page of a forum's posts. page is zero-based; out-of-range
// paging values fall back to defaults rather than erroring.
func (c *Client) Posts(ctx context.Context, forumID int64, page, size int) (*model.PageResponse[model.Post], error) {
	q := pageQuery(page, size)
	q.Set("forumId", fmt.Sprintf("%d", forumID))

	var resp model.PageResponse[model.Post]
	if err := c.do(ctx, http.MethodGet, "/posts", q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Content == nil {
		return nil, model.NewMalformedError("post page response missing content")
	}
	return &resp, nil
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post and returns the server-assigned record.
func (c *Client) CreatePost(ctx context.Context, req model.CreatePostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update and returns the updated post.
func (c *Client) UpdatePost(ctx context.Context, id int64, req model.UpdatePostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), nil, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post, reporting whether the backend confirmed it.
func (c *Client) DeletePost(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil, &deleted); err != nil {
		return false, err
	}
	return deleted, nil
}
