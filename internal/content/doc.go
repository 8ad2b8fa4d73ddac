// Package content handles the text plumbing around post and comment
// bodies: attachment markers embedded in plain text, and the in-memory
// comment reply tree.
//
// Uploaded files live in body text as markdown-style markers:
//
//	Hello
//
//	[Attached file](http://host/files/photo.png)
//
// ExtractAttachments strips the markers for display and classifies each
// attachment as an image or a generic file by extension. InsertReply
// attaches a freshly created reply under its parent comment without
// re-fetching the thread.
package content
