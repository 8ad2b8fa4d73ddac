package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/forumhq/forumctl/internal/model"
)

// uploadResponse is the payload returned by POST /upload.
type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Upload sends one file as multipart form data, optionally associated with
// a post or comment, and returns the URL the backend stored it under.
// Transport failures and responses without a usable URL both surface as
// upload-kind errors.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, postID, commentID *int64) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if postID != nil {
		if err := w.WriteField("postId", fmt.Sprintf("%d", *postID)); err != nil {
			return "", fmt.Errorf("building multipart body: %w", err)
		}
	}
	if commentID != nil {
		if err := w.WriteField("commentId", fmt.Sprintf("%d", *commentID)); err != nil {
			return "", fmt.Errorf("building multipart body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		uploadErr := model.NewUploadError("upload could not reach the server")
		uploadErr.Err = err
		return "", uploadErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		uploadErr := model.NewUploadError("reading upload response")
		uploadErr.Err = err
		return "", uploadErr
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.ClearToken()
		}
		return "", model.NewStatusError(resp.StatusCode, body)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.URL == "" {
		return "", model.NewUploadError("upload response carried no file URL")
	}

	c.logger.Info("file uploaded", slog.String("url", parsed.URL))
	return parsed.URL, nil
}

// UploadFile is a convenience wrapper around Upload for a file on disk.
func (c *Client) UploadFile(ctx context.Context, path string, postID, commentID *int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return c.Upload(ctx, path, f, postID, commentID)
}
