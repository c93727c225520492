// Package custody implements the wallet-custody service layer: wallet
// creation with threshold key splitting, share submission, and secret
// recovery.
//
// # Model
//
// Creating a user generates one Ethereum and one Bitcoin wallet. Each
// private key is parsed into the sharing field, split into holders shares
// with reconstruction threshold degree+1, and persisted as a sharing
// session keyed by the wallet's public key. The private key itself is
// discarded once split; only the user record (public keys and sharing
// parameters) and the sessions survive.
//
// Share holders can submit additional shares into a session via
// SubmitShare; duplicate x coordinates are rejected so a resubmitted share
// cannot skew reconstruction. RecoverSecret interpolates the session's
// shares back into the private key and returns it hex-encoded.
//
// # Persistence
//
// UserRepository and ShareRepository marshal records to JSON and persist
// them through an interfaces.DocumentStore, so the service runs unchanged
// over the file, S3, IPFS, Vault, or in-memory backends, or a replicated
// combination of them.
package custody
