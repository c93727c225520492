// Package storage provides keyed document persistence with pluggable backends.
//
// The storage package offers a unified interface for storing and retrieving
// custody documents identified by derived SHA-256 keys across multiple
// backends:
//
//   - File system storage for local development and testing
//   - S3-compatible storage for cloud deployments
//   - IPFS node storage using the mutable file system API
//   - Vault storage using the KV v2 secrets engine
//   - In-memory storage for tests
//
// # Storage URI Format
//
// Backends are specified using URI format:
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported URI schemes:
//
//   - file:///var/lib/custody/documents/
//   - s3://bucket-name/prefix/?region=us-west-2
//   - ipfs://ipfs.example.com:5001/custody
//   - vault://vault.example.com:8200/secret/custody?token=...
//   - memory://dev
//
// # Document Keys
//
// Documents are stored under keys derived from stable identifiers (user ID,
// wallet public key), never from document content, so a document can be
// updated in place as shares accumulate. Different document kinds (user
// records and sharing sessions) are stored in separate namespaces.
//
// # Vault Storage
//
// The VaultStore persists documents in HashiCorp Vault using the KV v2
// secret engine with path format: {mount}/data/{path}/{kind}/{key}. The
// token is taken from the URI or the VAULT_TOKEN environment variable.
//
// # Multi-Backend Example
//
//	factory := storage.NewStoreFactory(logger)
//
//	locations := []interfaces.DocumentStoreLocation{...}
//	multiStore, err := factory.CreateMultiStore(locations)
//	if err != nil {
//	    log.Fatalf("Failed to create document stores: %v", err)
//	}
//
// Writes replicate to every available backend and reads fall back across
// backends in configuration order.
package storage
