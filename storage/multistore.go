package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// MultiStore implements interfaces.DocumentStore across multiple backends.
// Writes replicate to every available backend, reads fall back in order.
type MultiStore struct {
	backends []interfaces.DocumentStore
	log      *slog.Logger
}

// NewMultiStore creates a new multi-backend document store.
func NewMultiStore(backends []interfaces.DocumentStore, logger *slog.Logger) *MultiStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiStore{
		backends: backends,
		log:      logger,
	}
}

// Get returns the document from the first backend that has it. A backend
// miss (ErrDocumentNotFound) is still a miss for the multi-store only if
// every backend misses.
func (m *MultiStore) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	start := time.Now()
	var errs []error
	notFound := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable",
				slog.String("backend_name", backend.Name()),
				slog.String("document_key", key.String()))
			continue
		}

		data, err := backend.Get(ctx, key, kind)
		if err == nil {
			m.log.Info("Successfully fetched document",
				slog.String("backend_name", backend.Name()),
				slog.String("document_key", key.String()),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			notFound++
			continue
		}

		errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		m.log.Debug("Failed to fetch from backend",
			slog.String("backend_name", backend.Name()),
			slog.String("document_key", key.String()),
			"err", err)
	}

	if len(errs) == 0 && notFound > 0 {
		return nil, interfaces.ErrDocumentNotFound
	}

	m.log.Error("All backends failed to fetch document",
		slog.String("document_key", key.String()),
		slog.Int("failed_backends", len(errs)),
		slog.Duration("duration", time.Since(start)))

	return nil, fmt.Errorf("all backends failed to fetch %s: %v", key.String(), errs)
}

// Put stores the document in every available backend. The write succeeds
// if at least one backend accepts it.
func (m *MultiStore) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	start := time.Now()
	var success bool
	var errs []error

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable", slog.String("backend_name", backend.Name()))
			continue
		}

		err := backend.Put(ctx, key, kind, data)
		if err == nil {
			if !success {
				success = true
				m.log.Info("Successfully stored document",
					slog.String("backend_name", backend.Name()),
					slog.String("document_key", key.String()),
					slog.Duration("duration", time.Since(start)))
			}
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			m.log.Debug("Failed to store to backend",
				slog.String("backend_name", backend.Name()),
				"err", err)
		}
	}

	if !success {
		m.log.Error("All backends failed to store document",
			slog.Int("failed_backends", len(errs)),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("all backends failed to store %s: %v", key.String(), errs)
	}

	return nil
}

// Available checks if any backend is available.
func (m *MultiStore) Available(ctx context.Context) bool {
	for _, backend := range m.backends {
		if backend.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this store.
func (m *MultiStore) Name() string {
	return "multi-store"
}

// LocationURI returns a combined URI listing every backend.
func (m *MultiStore) LocationURI() string {
	var locations []string
	for _, backend := range m.backends {
		locations = append(locations, backend.LocationURI())
	}

	return "multi:[" + strings.Join(locations, ",") + "]"
}
