package interfaces

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DocumentKey is the 32-byte SHA-256 key a document is stored under. Keys
// are derived from stable identifiers (user ID, wallet public key), never
// from document content, so a document can be updated in place.
type DocumentKey [32]byte

// UserKey derives the storage key for a user record.
func UserKey(userID string) DocumentKey {
	return DocumentKey(sha256.Sum256([]byte("user:" + userID)))
}

// SessionKey derives the storage key for a sharing session. Public keys are
// lowercased first so hex casing differences cannot split a session.
func SessionKey(publicKey string) DocumentKey {
	return DocumentKey(sha256.Sum256([]byte("session:" + strings.ToLower(publicKey))))
}

// String returns the hex representation.
func (k DocumentKey) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns the raw 32-byte key.
func (k DocumentKey) Bytes() []byte {
	return k[:]
}

// DocumentKind indicates the storage namespace a document belongs to.
type DocumentKind int

const (
	// UserDocument holds a user record.
	UserDocument DocumentKind = iota
	// ShareDocument holds a sharing session with its custody shares.
	ShareDocument
)

// String returns the namespace name.
func (k DocumentKind) String() string {
	switch k {
	case UserDocument:
		return "users"
	case ShareDocument:
		return "shares"
	default:
		return "unknown"
	}
}

// DocumentStoreLocation represents a URI identifying a document store
// backend.
type DocumentStoreLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
	Auth   string     // Authentication info
}

// NewDocumentStoreLocation parses and validates a store URI.
func NewDocumentStoreLocation(uri string) (DocumentStoreLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return DocumentStoreLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "s3", "ipfs", "vault", "memory":
		// Valid scheme
	default:
		return DocumentStoreLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}

	var auth string
	if parsed.User != nil {
		auth = parsed.User.String()
	}

	return DocumentStoreLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
		Auth:   auth,
	}, nil
}

// String returns the original URI string.
func (loc DocumentStoreLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc DocumentStoreLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// GetParamBool returns a boolean query parameter value.
func (loc DocumentStoreLocation) GetParamBool(name string) bool {
	value := loc.Query.Get(name)
	return value == "true" || value == "1" || value == "yes"
}

var (
	// ErrDocumentNotFound is returned when no document exists under the
	// requested key.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrBackendUnavailable is returned when a document store backend is
	// not accessible, whether through network issues, authentication
	// failures, or service outages.
	ErrBackendUnavailable = errors.New("document store unavailable")

	// ErrInvalidLocationURI is returned when a store location URI is
	// malformed or names an unsupported scheme.
	ErrInvalidLocationURI = errors.New("invalid document store URI")
)

// DocumentStore provides keyed document persistence. Implementations must
// be safe for concurrent use.
type DocumentStore interface {
	// Get retrieves a document by key and kind. Returns
	// ErrDocumentNotFound if no document exists under the key.
	Get(ctx context.Context, key DocumentKey, kind DocumentKind) ([]byte, error)

	// Put stores a document under the key, replacing any previous version.
	Put(ctx context.Context, key DocumentKey, kind DocumentKind, data []byte) error

	// Available checks whether the backend is accessible.
	Available(ctx context.Context) bool

	// Name returns an identifier for logging.
	Name() string

	// LocationURI returns the URI identifying this backend.
	LocationURI() string
}

// DocumentStoreFactory creates document stores from location URIs.
type DocumentStoreFactory interface {
	// StoreFor creates a backend from a URI.
	// Supports file://, s3://, ipfs://, vault://, memory://
	StoreFor(location DocumentStoreLocation) (DocumentStore, error)

	// CreateMultiStore aggregates several backends into one store that
	// replicates writes and falls back on reads.
	CreateMultiStore(locations []DocumentStoreLocation) (DocumentStore, error)
}
