// Package render turns domain objects into the terminal views forumctl
// prints: forum tables, post listings with pagination footers, indented
// comment threads, attachment cards and the session status line. It also
// owns the translation from API error kinds to the one-line banners shown
// to the user, so commands never format errors themselves.
package render
