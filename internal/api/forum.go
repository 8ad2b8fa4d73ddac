package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forumhq/forumctl/internal/model"
)

// Forums lists every forum.
func (c *Client) Forums(ctx context.Context) ([]model.Forum, error) {
	var forums []model.Forum
	if err := c.do(ctx, http.MethodGet, "/forums", nil, nil, &forums); err != nil {
		return nil, err
	}
	return forums, nil
}

// Forum fetches a single forum by id.
func (c *Client) Forum(ctx context.Context, id int64) (*model.Forum, error) {
	var forum model.Forum
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/forums/%d", id), nil, nil, &forum); err != nil {
		return nil, err
	}
	return &forum, nil
}

// CreateForum creates a forum and returns the server-assigned record.
func (c *Client) CreateForum(ctx context.Context, req model.CreateForumRequest) (*model.Forum, error) {
	var forum model.Forum
	if err := c.do(ctx, http.MethodPost, "/forums", nil, req, &forum); err != nil {
		return nil, err
	}
	return &forum, nil
}
