package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhq/forumctl/internal/config"
)

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestInspect_AcceptsImage(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	info, err := picker.Inspect(writeFile(t, "photo.PNG", 512))
	require.NoError(t, err)
	assert.Equal(t, "photo.PNG", info.Filename)
	assert.Equal(t, "image/png", info.MIMEType)
	assert.Equal(t, int64(512), info.Size)
	assert.True(t, info.IsImage)
}

func TestInspect_AcceptsDocument(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	info, err := picker.Inspect(writeFile(t, "report.pdf", 100))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.MIMEType)
	assert.False(t, info.IsImage)
}

func TestInspect_RejectsOversizedFile(t *testing.T) {
	t.Parallel()

	picker := NewPicker(100, config.DefaultAllowedTypes)

	_, err := picker.Inspect(writeFile(t, "big.png", 101))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestInspect_SizeLimitIsInclusive(t *testing.T) {
	t.Parallel()

	picker := NewPicker(100, config.DefaultAllowedTypes)

	_, err := picker.Inspect(writeFile(t, "exact.png", 100))
	assert.NoError(t, err)
}

func TestInspect_RejectsDisallowedType(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	_, err := picker.Inspect(writeFile(t, "script.sh", 10))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInspect_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	_, err := picker.Inspect(writeFile(t, "mystery.xyz123", 10))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInspect_MissingFile(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	_, err := picker.Inspect(filepath.Join(t.TempDir(), "absent.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect_RejectsDirectory(t *testing.T) {
	t.Parallel()

	picker := NewPicker(1<<20, config.DefaultAllowedTypes)

	_, err := picker.Inspect(t.TempDir())
	assert.ErrorIs(t, err, ErrNotAFile)
}
