package command

import (
	"context"
	"fmt"
)

// runUpload uploads a file on its own, optionally associated with a post
// or comment, and prints the served URL with a ready-to-paste marker.
func (a *App) runUpload(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := newFlagSet("upload")
	postID := fs.Int64("post", 0, "post to associate the file with")
	commentID := fs.Int64("comment", 0, "comment to associate the file with")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(fs.Args()) == 0 {
		return fmt.Errorf("file path is required")
	}
	if *postID > 0 && *commentID > 0 {
		return fmt.Errorf("pass --post or --comment, not both")
	}

	var post, comment *int64
	if *postID > 0 {
		post = postID
	}
	if *commentID > 0 {
		comment = commentID
	}

	url, err := a.uploadAttachment(ctx, fs.Args()[0], post, comment)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Marker: [Attached file](%s)\n", url)
	return nil
}
