// Package interfaces defines the plain-data types and contracts shared by
// the wallet custody service's components, separating interface
// definitions from implementations.
//
// The package provides:
//
//   - Wallet types: WalletKind, KeyPair, WalletGenerator — the boundary to
//     key-pair generation. Private keys cross this boundary exactly once,
//     on their way to being split.
//
//   - Custody documents: User, WalletAccount, SharingSession, StoredShare —
//     the shapes persisted by the document store and served over HTTP.
//     Share coordinates are decimal strings; no document ever contains a
//     private key.
//
//   - Storage contracts: DocumentStore, DocumentStoreFactory,
//     DocumentStoreLocation — keyed document persistence behind URI-selected
//     backends (file://, s3://, ipfs://, vault://, memory://), with
//     DocumentKey derivation helpers and the shared storage error
//     sentinels.
//
// Components depend on these contracts rather than on each other, so any
// implementation can be swapped in tests or deployments.
package interfaces
