package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAttachments_SingleImage(t *testing.T) {
	t.Parallel()

	text := "Hello\n\n[Attached file](http://x/y.png)"

	cleaned, attachments := ExtractAttachments(text)
	assert.Equal(t, "Hello", cleaned)
	require.Len(t, attachments, 1)
	assert.Equal(t, "http://x/y.png", attachments[0].URL)
	assert.Equal(t, "y.png", attachments[0].Filename)
	assert.Equal(t, KindImage, attachments[0].Kind)
}

func TestExtractAttachments_GenericFile(t *testing.T) {
	t.Parallel()

	_, attachments := ExtractAttachments("[Attached file](https://host/files/report.pdf)")
	require.Len(t, attachments, 1)
	assert.Equal(t, KindFile, attachments[0].Kind)
	assert.Equal(t, "report.pdf", attachments[0].Filename)
}

func TestExtractAttachments_CaseInsensitiveExtension(t *testing.T) {
	t.Parallel()

	_, attachments := ExtractAttachments("[Attached file](http://x/PHOTO.JPG)")
	require.Len(t, attachments, 1)
	assert.Equal(t, KindImage, attachments[0].Kind)
}

func TestExtractAttachments_MultipleInOrder(t *testing.T) {
	t.Parallel()

	text := "intro [Attached file](http://x/a.png) middle [Attached file](http://x/b.zip) end"

	cleaned, attachments := ExtractAttachments(text)
	require.Len(t, attachments, 2)
	assert.Equal(t, "http://x/a.png", attachments[0].URL)
	assert.Equal(t, "http://x/b.zip", attachments[1].URL)
	assert.NotContains(t, cleaned, "Attached file")
}

func TestExtractAttachments_NoMarkers(t *testing.T) {
	t.Parallel()

	cleaned, attachments := ExtractAttachments("just a plain post body")
	assert.Equal(t, "just a plain post body", cleaned)
	assert.Empty(t, attachments)
}

func TestExtractAttachments_IgnoresNonHTTPLinks(t *testing.T) {
	t.Parallel()

	text := "[Attached file](file:///etc/passwd)"
	cleaned, attachments := ExtractAttachments(text)
	assert.Equal(t, text, cleaned)
	assert.Empty(t, attachments)
}

func TestAppendAttachment(t *testing.T) {
	t.Parallel()

	body := AppendAttachment("Check this out", "http://x/y.png")
	assert.Equal(t, "Check this out\n\n[Attached file](http://x/y.png)", body)

	// Round-trips through extraction.
	cleaned, attachments := ExtractAttachments(body)
	assert.Equal(t, "Check this out", cleaned)
	require.Len(t, attachments, 1)
}

func TestAppendAttachment_EmptyBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[Attached file](http://x/y.png)", AppendAttachment("  ", "http://x/y.png"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 150))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", Truncate("abcdefgh", 0), "non-positive limit disables truncation")
}

func TestTruncate_CountsRunes(t *testing.T) {
	t.Parallel()

	// Cuts fall on rune boundaries, never inside a multibyte character.
	assert.Equal(t, "日本語...", Truncate("日本語のテスト", 3))
	assert.Equal(t, "éclair", Truncate("éclair", 6), "six runes fit a six-rune limit")
}
