package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/forumhq/forumctl/internal/content"
	"github.com/forumhq/forumctl/internal/model"
)

// summaryLength caps post content in listings before truncation.
const summaryLength = 150

// Renderer writes terminal views to a single output stream.
type Renderer struct {
	w io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Forums prints a forum table: id, name, post count and description.
func (r *Renderer) Forums(forums []model.Forum) {
	if len(forums) == 0 {
		fmt.Fprintln(r.w, "No forums yet.")
		return
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOSTS\tDESCRIPTION")
	for _, forum := range forums {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			forum.ID, forum.Name, forum.PostCount, content.Truncate(forum.Description, 60))
	}
	tw.Flush()
}

// Forum prints a single forum header, as shown above its post listing.
func (r *Renderer) Forum(forum *model.Forum) {
	fmt.Fprintf(r.w, "# %s (forum %d)\n", forum.Name, forum.ID)
	if forum.Description != "" {
		fmt.Fprintln(r.w, forum.Description)
	}
	if forum.CreatedBy != nil {
		fmt.Fprintf(r.w, "created by %s on %s\n", forum.CreatedBy.Name(), formatDate(forum.CreatedAt))
	}
}

// Posts prints one page of posts with a pagination footer. Each row shows
// the title, author, comment count and a truncated summary with attachment
// markers stripped.
func (r *Renderer) Posts(page *model.PageResponse[model.Post]) {
	if len(page.Content) == 0 {
		fmt.Fprintln(r.w, "No posts yet.")
		return
	}

	for _, post := range page.Content {
		r.postSummary(&post)
	}

	fmt.Fprintf(r.w, "\npage %d of %d (%d posts)", page.Number+1, page.TotalPages, page.TotalElements)
	switch {
	case page.HasNext() && page.HasPrevious():
		fmt.Fprint(r.w, " — use --page to move")
	case page.HasNext():
		fmt.Fprint(r.w, " — more on the next page")
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) postSummary(post *model.Post) {
	fmt.Fprintf(r.w, "[%d] %s\n", post.ID, post.Title)

	author := "unknown"
	if post.Author != nil {
		author = post.Author.Name()
	}
	fmt.Fprintf(r.w, "    by %s on %s", author, formatDate(post.CreatedAt))
	if post.CommentCount == 1 {
		fmt.Fprint(r.w, " · 1 comment")
	} else if post.CommentCount > 1 {
		fmt.Fprintf(r.w, " · %d comments", post.CommentCount)
	}
	fmt.Fprintln(r.w)

	cleaned, attachments := content.ExtractAttachments(post.Content)
	if summary := content.Truncate(strings.TrimSpace(cleaned), summaryLength); summary != "" {
		fmt.Fprintf(r.w, "    %s\n", summary)
	}
	if len(attachments) > 0 {
		fmt.Fprintf(r.w, "    (%d attachment(s))\n", len(attachments))
	}
}

// Post prints the full post view: header, cleaned body and attachments.
func (r *Renderer) Post(post *model.Post) {
	fmt.Fprintf(r.w, "# %s\n", post.Title)

	author := "unknown"
	if post.Author != nil {
		author = post.Author.Name()
	}
	fmt.Fprintf(r.w, "post %d · by %s on %s", post.ID, author, formatDate(post.CreatedAt))
	if post.Forum != nil {
		fmt.Fprintf(r.w, " · in %s", post.Forum.Name)
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w)

	cleaned, attachments := content.ExtractAttachments(post.Content)
	fmt.Fprintln(r.w, strings.TrimSpace(cleaned))
	r.Attachments(attachments)
}

// Attachments prints attachment cards under a post body.
func (r *Renderer) Attachments(attachments []content.Attachment) {
	for _, a := range attachments {
		label := "file"
		if a.Kind == content.KindImage {
			label = "image"
		}
		fmt.Fprintf(r.w, "\n[%s] %s\n  %s\n", label, a.Filename, a.URL)
	}
}

// Comments prints a comment tree, replies indented under their parent.
func (r *Renderer) Comments(comments []*model.Comment) {
	total := content.CountComments(comments)
	switch total {
	case 0:
		fmt.Fprintln(r.w, "\nNo comments yet.")
		return
	case 1:
		fmt.Fprintln(r.w, "\n1 comment")
	default:
		fmt.Fprintf(r.w, "\n%d comments\n", total)
	}
	r.commentTree(comments, 0)
}

func (r *Renderer) commentTree(comments []*model.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, comment := range comments {
		author := "unknown"
		if comment.Author != nil {
			author = comment.Author.Name()
		}
		fmt.Fprintf(r.w, "%s[%d] %s · %s\n", indent, comment.ID, author, formatDate(comment.CreatedAt))
		for _, line := range strings.Split(strings.TrimSpace(comment.Content), "\n") {
			fmt.Fprintf(r.w, "%s    %s\n", indent, line)
		}
		r.commentTree(comment.Replies, depth+1)
	}
}

// Profile prints the signed-in user's profile card.
func (r *Renderer) Profile(user *model.User) {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "username\t%s\n", user.Username)
	fmt.Fprintf(tw, "display name\t%s\n", user.Name())
	fmt.Fprintf(tw, "email\t%s\n", user.Email)
	if user.Role != "" {
		fmt.Fprintf(tw, "role\t%s\n", user.Role)
	}
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "member since\t%s\n", formatDate(user.CreatedAt))
	}
	tw.Flush()
}

// Status prints the session status line shown by whoami and after login.
func (r *Renderer) Status(user *model.User) {
	if user == nil {
		fmt.Fprintln(r.w, "Not signed in.")
		return
	}
	fmt.Fprintf(r.w, "Signed in as %s (%s)\n", user.Name(), user.Username)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.Format("Jan 2, 2006")
}
