// Package storage persists uploaded evidence files on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
)

// StoredFile describes a file after it has been written to disk.
type StoredFile struct {
	// Name is the original client-supplied file name, sanitized.
	Name string
	// Path is the location on disk, unique per upload.
	Path string
	// ContentType is the declared type, or a sniffed one when the client
	// did not declare anything useful.
	ContentType string
	// Size is the number of bytes written.
	Size int64
}

// FileStore writes evidence files into a single directory. Stored names are
// prefixed with a fresh UUID so concurrent uploads of the same file name
// never collide.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the upload directory if it does not exist.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the upload directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save copies src to disk under a unique name and returns the stored file's
// metadata. declaredType is trusted when present; otherwise the written file
// is sniffed. Failures are reported as ErrStorage.
func (s *FileStore) Save(src io.Reader, originalName, declaredType string) (*StoredFile, error) {
	name := sanitizeName(originalName)
	path := filepath.Join(s.dir, uuid.New().String()+"_"+name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", apperrors.ErrStorage, path, err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: writing %s: %v", apperrors.ErrStorage, path, err)
	}

	contentType := declaredType
	if contentType == "" || contentType == "application/octet-stream" {
		if mt, serr := mimetype.DetectFile(path); serr == nil {
			contentType = mt.String()
		} else {
			contentType = "application/octet-stream"
		}
	}

	s.logger.Debug("stored evidence file",
		zap.String("path", path),
		zap.Int64("size", size),
		zap.String("content_type", contentType))

	return &StoredFile{
		Name:        name,
		Path:        path,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", apperrors.ErrStorage, path, err)
	}
	return nil
}

// sanitizeName strips any directory components and characters that do not
// belong in a stored file name.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return name
}
