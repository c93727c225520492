package storage

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// StoreFactory creates document stores from location URIs and aggregates
// them into multi-backend configurations for redundant custody storage.
type StoreFactory struct {
	log *slog.Logger
}

// NewStoreFactory creates a new factory instance.
func NewStoreFactory(logger *slog.Logger) *StoreFactory {
	return &StoreFactory{
		log: logger,
	}
}

// StoreFor creates a document store from a location URI.
// The URI format is [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - file:// - Local filesystem storage
//   - s3:// - Amazon S3 or compatible object storage
//   - ipfs:// - IPFS node MFS storage
//   - vault:// - HashiCorp Vault KV v2 storage
//   - memory:// - In-process storage, for tests and development
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *StoreFactory) StoreFor(location interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	switch location.Scheme {
	case "file":
		return sf.createFileStore(location)
	case "s3":
		return sf.createS3Store(location)
	case "ipfs":
		return sf.createIPFSStore(location)
	case "vault":
		return sf.createVaultStore(location)
	case "memory":
		return NewMemoryStore(location.Host, sf.log), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, location.Scheme)
	}
}

// CreateMultiStore creates a multi-backend store from a list of location
// URIs. URIs that fail to produce a backend are logged and skipped. Returns
// an error if no valid backend could be created.
func (sf *StoreFactory) CreateMultiStore(locations []interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	backends := make([]interfaces.DocumentStore, 0, len(locations))

	for _, location := range locations {
		backend, err := sf.StoreFor(location)
		if err != nil {
			sf.log.Warn("Failed to create document store",
				"err", err,
				slog.String("locationURI", location.String()))
			continue
		}
		backends = append(backends, backend)
	}

	if len(backends) == 0 {
		return nil, fmt.Errorf("no valid document stores created")
	}

	return NewMultiStore(backends, sf.log), nil
}

// createFileStore creates a filesystem store.
// URI format: file:///absolute/path/ or file://./relative/path/
func (sf *StoreFactory) createFileStore(location interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	sf.log.Debug("Creating file store", slog.String("uri", location.String()))

	path := location.Path
	if location.Host != "" {
		path = location.Host + "/" + strings.TrimPrefix(path, "/")
	}

	if path == "" {
		return nil, fmt.Errorf("empty path in file URI: %s", location.String())
	}

	return NewFileStore(path, sf.log)
}

// createS3Store creates an S3 or S3-compatible store.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/prefix/?region=us-west-2&endpoint=custom.s3.com
func (sf *StoreFactory) createS3Store(location interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	sf.log.Debug("Creating S3 store", slog.String("uri", location.String()))

	bucketName := location.Host
	prefix := strings.TrimPrefix(location.Path, "/")

	region := location.GetParam("region")
	if region == "" {
		region = "us-east-1"
	}

	endpoint := location.GetParam("endpoint")

	var accessKey, secretKey string
	if location.Auth != "" {
		accessKey, secretKey, _ = strings.Cut(location.Auth, ":")
		sf.log.Debug("Using embedded S3 credentials")
	} else {
		sf.log.Debug("No credentials in URI, using ambient AWS credential chain")
	}

	return NewS3Store(bucketName, prefix, region, endpoint, accessKey, secretKey, sf.log)
}

// createIPFSStore creates an IPFS store backed by a node's MFS.
// URI format: ipfs://host:port/root-path
func (sf *StoreFactory) createIPFSStore(location interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	sf.log.Debug("Creating IPFS store", slog.String("uri", location.String()))

	host, port, found := strings.Cut(location.Host, ":")
	if !found || port == "" {
		port = "5001" // Default IPFS API port
	}

	return NewIPFSStore(host, port, location.Path, sf.log)
}

// createVaultStore creates a HashiCorp Vault KV v2 store.
// URI format: vault://host:port/mount/data-path?token=...&tls=true
// The token falls back to the VAULT_TOKEN environment variable.
func (sf *StoreFactory) createVaultStore(location interfaces.DocumentStoreLocation) (interfaces.DocumentStore, error) {
	sf.log.Debug("Creating Vault store", slog.String("uri", location.String()))

	scheme := "http"
	if location.GetParamBool("tls") {
		scheme = "https"
	}
	address := fmt.Sprintf("%s://%s", scheme, location.Host)

	parts := strings.SplitN(strings.Trim(location.Path, "/"), "/", 2)
	if parts[0] == "" {
		return nil, fmt.Errorf("missing mount path in vault URI: %s", location.String())
	}
	mountPath := parts[0]
	dataPath := "custody"
	if len(parts) == 2 && parts[1] != "" {
		dataPath = parts[1]
	}

	token := location.GetParam("token")
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}

	return NewVaultStore(address, mountPath, dataPath, token, sf.log)
}
