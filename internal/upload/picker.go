package upload

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ===== Picker Errors =====
var (
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrNotAFile        = errors.New("path is not a regular file")
)

// FileInfo describes a locally validated file, ready to hand to the
// upload call owned by the calling command.
type FileInfo struct {
	Path     string
	Filename string
	MIMEType string
	Size     int64
	IsImage  bool
}

// Picker validates files before upload: size against a maximum, type
// against an allow-list. It never performs the upload itself; failure and
// progress state stay with the caller.
type Picker struct {
	maxSize int64
	allowed map[string]bool
}

// NewPicker creates a picker with the given size ceiling in bytes and
// MIME-type allow-list.
func NewPicker(maxSize int64, allowedTypes []string) *Picker {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &Picker{maxSize: maxSize, allowed: allowed}
}

// Inspect stats and validates the file at path.
func (p *Picker) Inspect(path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAFile)
	}
	if info.Size() > p.maxSize {
		return nil, fmt.Errorf("%s is %d bytes (limit %d): %w", filepath.Base(path), info.Size(), p.maxSize, ErrTooLarge)
	}

	mimeType := typeByExtension(path)
	if !p.allowed[mimeType] {
		return nil, fmt.Errorf("%s (%s): %w", filepath.Base(path), mimeType, ErrUnsupportedType)
	}

	return &FileInfo{
		Path:     path,
		Filename: filepath.Base(path),
		MIMEType: mimeType,
		Size:     info.Size(),
		IsImage:  strings.HasPrefix(mimeType, "image/"),
	}, nil
}

// typeByExtension derives a MIME type from the filename extension,
// dropping any charset parameter.
func typeByExtension(path string) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
