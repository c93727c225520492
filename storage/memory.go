package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// MemoryStore implements an in-process document store. It backs the
// memory:// scheme, which exists for tests and single-node development
// where durable custody storage would get in the way.
type MemoryStore struct {
	mu          sync.RWMutex
	documents   map[memoryKey][]byte
	log         *slog.Logger
	name        string
	locationURI string
}

type memoryKey struct {
	kind interfaces.DocumentKind
	key  interfaces.DocumentKey
}

// NewMemoryStore creates an empty in-process document store. The name
// distinguishes multiple instances in logs.
func NewMemoryStore(name string, log *slog.Logger) *MemoryStore {
	if name == "" {
		name = "default"
	}
	return &MemoryStore{
		documents:   make(map[memoryKey][]byte),
		log:         log,
		name:        name,
		locationURI: fmt.Sprintf("memory://%s", name),
	}
}

// Get retrieves a document by key and kind. Returns ErrDocumentNotFound
// for unknown keys.
func (s *MemoryStore) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.documents[memoryKey{kind: kind, key: key}]
	if !ok {
		return nil, interfaces.ErrDocumentNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a copy of the document under its key.
func (s *MemoryStore) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[memoryKey{kind: kind, key: key}] = stored
	return nil
}

// Available always reports true for an in-process store.
func (s *MemoryStore) Available(ctx context.Context) bool {
	return true
}

// Name returns a unique identifier for this document store.
func (s *MemoryStore) Name() string {
	return fmt.Sprintf("memory-%s", s.name)
}

// LocationURI returns the URI that identifies this document store.
func (s *MemoryStore) LocationURI() string {
	return s.locationURI
}

// Len reports the number of stored documents, for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
