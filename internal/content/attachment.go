package content

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// attachmentPattern matches the marker embedded in post and comment text
// for every uploaded file.
var attachmentPattern = regexp.MustCompile(`\[Attached file\]\((https?://[^\s)]+)\)`)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Kind classifies an attachment for display
type Kind string

const (
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// Attachment is a file reference recovered from body text.
type Attachment struct {
	URL      string
	Filename string
	Kind     Kind
}

// ExtractAttachments strips every attachment marker from text and returns
// the cleaned text alongside the attachments in document order.
func ExtractAttachments(text string) (string, []Attachment) {
	matches := attachmentPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	attachments := make([]Attachment, 0, len(matches))
	for i, match := range matches {
		url := match[1]
		filename := path.Base(url)
		if filename == "." || filename == "/" {
			filename = fmt.Sprintf("attachment-%d", i+1)
		}
		kind := KindFile
		if imageExtensions[strings.ToLower(path.Ext(url))] {
			kind = KindImage
		}
		attachments = append(attachments, Attachment{URL: url, Filename: filename, Kind: kind})
	}

	cleaned := strings.TrimSpace(attachmentPattern.ReplaceAllString(text, ""))
	return cleaned, attachments
}

// AttachmentMarker builds the marker appended to body text when composing
// a post or comment with an uploaded file.
func AttachmentMarker(url string) string {
	return fmt.Sprintf("[Attached file](%s)", url)
}

// AppendAttachment appends an attachment marker to body text, separated by
// a blank line when the text is non-empty.
func AppendAttachment(text, url string) string {
	if strings.TrimSpace(text) == "" {
		return AttachmentMarker(url)
	}
	return text + "\n\n" + AttachmentMarker(url)
}

// Truncate shortens text for list views, appending an ellipsis when
// anything was cut. The limit counts runes so multibyte text is never
// split mid-character.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
