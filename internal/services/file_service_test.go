package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreProfilePicture(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewFileStorageService(dir, "/uploads/")
	require.NoError(t, err)

	content := []byte("fake image bytes")
	url, err := svc.StoreProfilePicture("avatar.PNG", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), "url %q should be under the base URL", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension should be preserved lowercased, got %q", url)
	assert.NotContains(t, url, "avatar", "original filename must not leak into the URL")

	storedName := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, storedName))
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestStoreProfilePictureRandomizesNames(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewFileStorageService(dir, "/uploads")
	require.NoError(t, err)

	first, err := svc.StoreProfilePicture("a.jpg", 1, bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	second, err := svc.StoreProfilePicture("a.jpg", 1, bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same source filename must not collide")
}

func TestStoreProfilePictureRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewFileStorageService(dir, "/uploads")
	require.NoError(t, err)

	for _, name := range []string{"payload.exe", "script.sh", "noextension", "image.svg"} {
		_, err := svc.StoreProfilePicture(name, 10, bytes.NewReader([]byte("x")))
		assert.True(t, errors.Is(err, ErrUnsupportedFileType), "%s: expected ErrUnsupportedFileType, got %v", name, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not leave files behind")
}

func TestStoreProfilePictureRejectsOversizedDeclaredSize(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewFileStorageService(dir, "/uploads")
	require.NoError(t, err)

	_, err = svc.StoreProfilePicture("big.png", MaxUploadSize+1, bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}

func TestNewFileStorageServiceCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewFileStorageService(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
