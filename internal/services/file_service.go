package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// --- Custom Service Errors for File Storage ---
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
)

// MaxUploadSize caps profile picture uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// FileStorageService stores uploaded files on the local filesystem and hands
// back the public URL they are served under.
type FileStorageService interface {
	StoreProfilePicture(filename string, size int64, content io.Reader) (string, error)
}

type fileStorageService struct {
	uploadDir string
	baseURL   string
}

// NewFileStorageService creates a FileStorageService rooted at uploadDir. The
// directory is created if missing.
func NewFileStorageService(uploadDir, baseURL string) (FileStorageService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}
	return &fileStorageService{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}, nil
}

// StoreProfilePicture validates the upload and writes it under a randomized
// name, so original filenames never reach the filesystem or the URL space.
func (s *fileStorageService) StoreProfilePicture(filename string, size int64, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: %q (allowed: png, jpg, jpeg, gif)", ErrUnsupportedFileType, ext)
	}
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}

	storedName := uuid.New().String() + ext
	targetPath := filepath.Join(s.uploadDir, storedName)

	target, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}
	defer target.Close()

	// LimitReader guards against a lying Content-Length.
	if _, err := io.Copy(target, io.LimitReader(content, MaxUploadSize+1)); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write file %s: %w", targetPath, err)
	}
	if info, err := target.Stat(); err == nil && info.Size() > MaxUploadSize {
		os.Remove(targetPath)
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	return s.baseURL + "/" + storedName, nil
}
