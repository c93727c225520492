package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// IPFSStore implements a document store using an IPFS node's MFS (mutable
// file system) API. Custody documents are looked up by derived key, not by
// content hash, so the store uses files paths rather than raw CIDs.
type IPFSStore struct {
	shell       *shell.Shell
	host        string
	port        string
	rootPath    string
	log         *slog.Logger
	locationURI string
}

// NewIPFSStore creates a new IPFS document store connected to the node API
// at host:port. Documents live under rootPath in the node's MFS.
func NewIPFSStore(host, port, rootPath string, log *slog.Logger) (*IPFSStore, error) {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	rootPath = "/" + strings.Trim(rootPath, "/")
	if rootPath == "/" {
		rootPath = "/custody"
	}

	return &IPFSStore{
		shell:       shell.NewShell(apiURL),
		host:        host,
		port:        port,
		rootPath:    rootPath,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s%s", apiURL, rootPath),
	}, nil
}

// Get retrieves a document from the node's MFS by key and kind. Returns
// ErrDocumentNotFound if no file exists at the derived path, or
// ErrBackendUnavailable if the node is not reachable.
func (s *IPFSStore) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	start := time.Now()
	filePath := s.getFilesPath(key, kind)

	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return nil, interfaces.ErrBackendUnavailable
	}

	reader, err := s.shell.FilesRead(ctx, filePath)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			s.log.Debug("Document not found in IPFS",
				slog.String("path", filePath),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrDocumentNotFound
		}

		s.log.Error("Failed to read document from IPFS",
			slog.String("path", filePath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to read document from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read IPFS response: %w", err)
	}

	s.log.Debug("Fetched document from IPFS",
		slog.String("path", filePath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Put writes a document into the node's MFS under its derived path,
// truncating any previous version.
func (s *IPFSStore) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	start := time.Now()
	filePath := s.getFilesPath(key, kind)

	if !s.shell.IsUp() {
		return interfaces.ErrBackendUnavailable
	}

	err := s.shell.FilesWrite(ctx, filePath, bytes.NewReader(data),
		shell.FilesWrite.Create(true),
		shell.FilesWrite.Parents(true),
		shell.FilesWrite.Truncate(true),
	)
	if err != nil {
		s.log.Error("Failed to write document to IPFS",
			slog.String("path", filePath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to write document to IPFS: %w", err)
	}

	s.log.Debug("Stored document in IPFS",
		slog.String("path", filePath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks if the IPFS node is reachable.
func (s *IPFSStore) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// Name returns a unique identifier for this document store.
func (s *IPFSStore) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}

// LocationURI returns the URI that identifies this document store.
func (s *IPFSStore) LocationURI() string {
	return s.locationURI
}

// getFilesPath builds the MFS path for a document key and kind.
func (s *IPFSStore) getFilesPath(key interfaces.DocumentKey, kind interfaces.DocumentKind) string {
	return path.Join(s.rootPath, kind.String(), key.String())
}
