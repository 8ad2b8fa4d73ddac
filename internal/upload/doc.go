// Package upload validates files locally before they travel to the
// backend: size against a configured ceiling, MIME type against an
// allow-list derived from the filename extension. The picker never talks
// to the network; the API client owns the actual multipart upload.
package upload
