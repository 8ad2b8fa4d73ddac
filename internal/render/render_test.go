package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhq/forumctl/internal/model"
)

var testDate = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

func render(fn func(r *Renderer)) string {
	var buf bytes.Buffer
	fn(New(&buf))
	return buf.String()
}

func TestForums_Table(t *testing.T) {
	t.Parallel()

	out := render(func(r *Renderer) {
		r.Forums([]model.Forum{
			{ID: 1, Name: "General", Description: "Anything goes", PostCount: 12},
			{ID: 2, Name: "Help"},
		})
	})

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Anything goes")
	assert.Contains(t, out, "Help")
}

func TestForums_Empty(t *testing.T) {
	t.Parallel()

	out := render(func(r *Renderer) { r.Forums(nil) })
	assert.Equal(t, "No forums yet.\n", out)
}

func TestPosts_PaginationFooter(t *testing.T) {
	t.Parallel()

	page := &model.PageResponse[model.Post]{
		Content: []model.Post{
			{ID: 7, Title: "Welcome thread", Content: "Say hello here", CreatedAt: testDate,
				Author: &model.User{Username: "alice"}, CommentCount: 3},
		},
		TotalElements: 25,
		TotalPages:    3,
		Size:          10,
		Number:        0,
		First:         true,
	}

	out := render(func(r *Renderer) { r.Posts(page) })

	assert.Contains(t, out, "[7] Welcome thread")
	assert.Contains(t, out, "by alice")
	assert.Contains(t, out, "3 comments")
	assert.Contains(t, out, "page 1 of 3 (25 posts)")
	assert.Contains(t, out, "more on the next page")
}

func TestPosts_SummaryStripsAttachmentMarkers(t *testing.T) {
	t.Parallel()

	page := &model.PageResponse[model.Post]{
		Content: []model.Post{
			{ID: 1, Title: "Photo dump", Content: "Look\n\n[Attached file](http://x/a.png)", CreatedAt: testDate},
		},
		TotalElements: 1,
		TotalPages:    1,
	}

	out := render(func(r *Renderer) { r.Posts(page) })

	assert.NotContains(t, out, "Attached file")
	assert.Contains(t, out, "Look")
	assert.Contains(t, out, "(1 attachment(s))")
}

func TestPost_FullViewWithAttachments(t *testing.T) {
	t.Parallel()

	post := &model.Post{
		ID:        9,
		Title:     "Trip report",
		Content:   "Great views\n\n[Attached file](http://x/summit.jpg)\n\n[Attached file](http://x/notes.pdf)",
		Author:    &model.User{Username: "bob", DisplayName: "Bob"},
		Forum:     &model.Forum{Name: "Travel"},
		CreatedAt: testDate,
	}

	out := render(func(r *Renderer) { r.Post(post) })

	assert.Contains(t, out, "# Trip report")
	assert.Contains(t, out, "in Travel")
	assert.Contains(t, out, "Great views")
	assert.NotContains(t, out, "Attached file")
	assert.Contains(t, out, "[image] summit.jpg")
	assert.Contains(t, out, "[file] notes.pdf")
	assert.Contains(t, out, "http://x/summit.jpg")
}

func TestComments_IndentsReplies(t *testing.T) {
	t.Parallel()

	comments := []*model.Comment{
		{ID: 1, Content: "root comment", Author: &model.User{Username: "alice"}, CreatedAt: testDate,
			Replies: []*model.Comment{
				{ID: 2, Content: "a reply", Author: &model.User{Username: "bob"}, CreatedAt: testDate},
			}},
	}

	out := render(func(r *Renderer) { r.Comments(comments) })

	assert.Contains(t, out, "2 comments")
	assert.Contains(t, out, "[1] alice")
	// The reply sits one indent level in.
	assert.Contains(t, out, "  [2] bob")
	assert.Contains(t, out, "      a reply")
}

func TestComments_Empty(t *testing.T) {
	t.Parallel()

	out := render(func(r *Renderer) { r.Comments(nil) })
	assert.Contains(t, out, "No comments yet.")
}

func TestProfileAndStatus(t *testing.T) {
	t.Parallel()

	user := &model.User{Username: "alice", DisplayName: "Alice A", Email: "alice@example.com", Role: "USER", CreatedAt: testDate}

	out := render(func(r *Renderer) { r.Profile(user) })
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "Alice A")

	assert.Contains(t, render(func(r *Renderer) { r.Status(user) }), "Signed in as Alice A (alice)")
	assert.Equal(t, "Not signed in.\n", render(func(r *Renderer) { r.Status(nil) }))
}

func TestBanner_DistinctPerKind(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err  error
		want string
	}{
		"expired session": {model.NewAuthenticationError("token expired"), "sign in again"},
		"forbidden":       {model.NewStatusError(403, nil), "permission"},
		"not found":       {model.NewStatusError(404, nil), "Not found"},
		"server":          {model.NewStatusError(500, nil), "try again later"},
		"network":         {model.NewNetworkError(errors.New("dial refused")), "Could not reach the server"},
		"validation":      {model.NewStatusError(400, []byte(`{"message":"title too short"}`)), "title too short"},
		"upload":          {model.NewUploadError("no url in response"), "Upload failed"},
		"plain error":     {errors.New("boom"), "boom"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, Banner(tc.err), tc.want)
		})
	}

	// Distinct kinds never share a banner.
	seen := map[string]string{}
	for name, tc := range cases {
		banner := Banner(tc.err)
		for prev, prevBanner := range seen {
			require.NotEqual(t, prevBanner, banner, "%s and %s share a banner", prev, name)
		}
		seen[name] = banner
	}
}
