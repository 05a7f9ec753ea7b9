// Package storage persists uploaded avatars, resumes and company logos on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind selects the extension allowlist and sub-directory for an upload.
type Kind string

const (
	KindAvatar Kind = "avatars"
	KindResume Kind = "resumes"
	KindLogo   Kind = "logos"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
)

var allowedExtensions = map[Kind]map[string]struct{}{
	KindAvatar: {".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}},
	KindLogo:   {".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}},
	KindResume: {".pdf": {}, ".doc": {}, ".docx": {}},
}

// LocalStore writes files below Dir and exposes them under PublicPrefix.
type LocalStore struct {
	dir          string
	publicPrefix string
	maxSize      int64
	logger       *zap.Logger
}

// NewLocalStore creates the upload directories if they are missing.
func NewLocalStore(dir, publicPrefix string, maxSize int64, logger *zap.Logger) (*LocalStore, error) {
	for kind := range allowedExtensions {
		if err := os.MkdirAll(filepath.Join(dir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		maxSize:      maxSize,
		logger:       logger,
	}, nil
}

// Dir returns the root directory, served statically by the router.
func (s *LocalStore) Dir() string { return s.dir }

// PublicPrefix returns the URL prefix files are served under.
func (s *LocalStore) PublicPrefix() string { return s.publicPrefix }

// Save copies the upload to a uuid-named file and returns its public URL.
func (s *LocalStore) Save(kind Kind, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[kind][ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if header.Size <= 0 {
		return "", ErrEmptyFile
	}
	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	target := filepath.Join(s.dir, string(kind), name)
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close %s: %w", target, err)
	}

	return path.Join(s.publicPrefix, string(kind), name), nil
}

// Remove deletes a file previously returned by Save. Unknown or foreign URLs are ignored and
// failures are only logged.
func (s *LocalStore) Remove(publicURL string) {
	rel, ok := strings.CutPrefix(publicURL, s.publicPrefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return
	}
	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove upload", zap.String("path", target), zap.Error(err))
	}
}
