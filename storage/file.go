package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// FileStore implements a document store using the local file system.
// Documents are stored in a directory structure organized by document kind.
type FileStore struct {
	baseDir     string
	prefixes    map[interfaces.DocumentKind]string
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a new file document store using the specified base
// directory. It creates subdirectories for each document kind if they don't
// exist.
func NewFileStore(baseDir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	prefixes := map[interfaces.DocumentKind]string{
		interfaces.UserDocument:  interfaces.UserDocument.String(),
		interfaces.ShareDocument: interfaces.ShareDocument.String(),
	}
	for _, subdir := range prefixes {
		if err := os.MkdirAll(filepath.Join(baseDir, subdir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", subdir, err)
		}
	}

	return &FileStore{
		baseDir:     baseDir,
		prefixes:    prefixes,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Get retrieves a document from the file system by key and kind.
// Returns ErrDocumentNotFound if the file doesn't exist.
func (s *FileStore) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	filePath := s.getFilePath(key, kind)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, interfaces.ErrDocumentNotFound
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched document from file",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return data, nil
}

// Put stores a document on the file system under its key. Share documents
// are written with owner-only permissions.
func (s *FileStore) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	filePath := s.getFilePath(key, kind)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	mode := os.FileMode(0o644)
	if kind == interfaces.ShareDocument {
		mode = 0o600
	}
	if err := os.WriteFile(filePath, data, mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.log.Debug("Stored document in file",
		slog.String("path", filePath),
		slog.String("key", key.String()))

	return nil
}

// Available checks if the file store is accessible by verifying the base
// directory exists.
func (s *FileStore) Available(ctx context.Context) bool {
	_, err := os.Stat(s.baseDir)
	if err != nil {
		s.log.Debug("File store unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this document store.
func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this document store.
func (s *FileStore) LocationURI() string {
	return s.locationURI
}

// getFilePath generates a file path for a document key and kind.
func (s *FileStore) getFilePath(key interfaces.DocumentKey, kind interfaces.DocumentKind) string {
	return filepath.Join(s.baseDir, s.prefixes[kind], key.String())
}
