package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// VaultStore implements a document store using HashiCorp Vault's KV v2
// secrets engine. Custody share documents are a natural fit for Vault:
// access is brokered, audited, and sealed with the cluster.
type VaultStore struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultStore creates a new Vault document store.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: Vault KV mount path (e.g. "secret")
//   - dataPath: path within the mount (e.g. "custody")
//   - token: Vault token; empty falls back to the client's environment
//   - log: structured logger for operational insights
func NewVaultStore(address, mountPath, dataPath, token string, log *slog.Logger) (*VaultStore, error) {
	config := api.DefaultConfig()
	config.Address = address
	config.HttpClient = &http.Client{Timeout: 30 * time.Second}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mountPath = strings.TrimSuffix(mountPath, "/")
	dataPath = strings.Trim(dataPath, "/")

	host := strings.TrimPrefix(strings.TrimPrefix(address, "https://"), "http://")

	return &VaultStore{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", host, mountPath, dataPath),
	}, nil
}

// Get retrieves a document from Vault by key and kind using the KV v2 API.
func (s *VaultStore) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	start := time.Now()
	path := s.getDataPath(key, kind)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		s.log.Error("Failed to read from Vault",
			slog.String("path", path),
			slog.String("key", key.String()),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		s.log.Debug("Document not found in Vault",
			slog.String("path", path),
			slog.String("key", key.String()))
		return nil, interfaces.ErrDocumentNotFound
	}

	// KV v2 wraps the payload in a "data" map.
	data, ok := secret.Data["data"]
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response")
	}

	content, ok := data.(map[string]interface{})["document"]
	if !ok {
		return nil, fmt.Errorf("document key not found in Vault data")
	}

	contentStr, ok := content.(string)
	if !ok {
		return nil, fmt.Errorf("invalid document format in Vault data")
	}

	s.log.Debug("Fetched document from Vault",
		slog.String("key", key.String()),
		slog.Duration("duration", time.Since(start)))

	return []byte(contentStr), nil
}

// Put stores a document in Vault under its key, replacing any previous
// version (KV v2 keeps the version history).
func (s *VaultStore) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	start := time.Now()
	path := s.getDataPath(key, kind)

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"document": string(data),
		},
	}

	if _, err := s.client.Logical().WriteWithContext(ctx, path, payload); err != nil {
		s.log.Error("Failed to write to Vault",
			slog.String("path", path),
			slog.String("key", key.String()),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	s.log.Debug("Stored document in Vault",
		slog.String("key", key.String()),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks if the Vault backend is accessible, initialized, and
// unsealed via the health endpoint.
func (s *VaultStore) Available(ctx context.Context) bool {
	health, err := s.client.Sys().HealthWithContext(ctx)
	if err != nil {
		s.log.Debug("Vault store unavailable", "err", err)
		return false
	}
	return health.Initialized && !health.Sealed
}

// Name returns a unique identifier for this document store.
func (s *VaultStore) Name() string {
	return fmt.Sprintf("vault-%s", s.mountPath)
}

// LocationURI returns the URI that identifies this document store.
func (s *VaultStore) LocationURI() string {
	return s.locationURI
}

// getDataPath builds the KV v2 data path for a document key and kind.
func (s *VaultStore) getDataPath(key interfaces.DocumentKey, kind interfaces.DocumentKind) string {
	return fmt.Sprintf("%s/data/%s/%s/%s", s.mountPath, s.dataPath, kind, key)
}
