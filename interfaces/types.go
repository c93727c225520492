package interfaces

// WalletKind identifies the chain a generated wallet belongs to.
type WalletKind string

const (
	// WalletEthereum is a secp256k1 wallet keyed by Ethereum address.
	WalletEthereum WalletKind = "ethereum"
	// WalletBitcoin is a secp256k1 wallet keyed by compressed public key.
	WalletBitcoin WalletKind = "bitcoin"
)

// Valid reports whether the kind is one this service can generate.
func (k WalletKind) Valid() bool {
	return k == WalletEthereum || k == WalletBitcoin
}

// KeyPair is the output of wallet generation. PrivateKeyHex exists only in
// memory between generation and splitting; it is never persisted, and
// callers must drop it as soon as the secret has been split into shares.
type KeyPair struct {
	Kind          WalletKind
	PublicKey     string
	PrivateKeyHex string
}

// WalletGenerator produces the key pairs whose private keys become the
// secrets handed to the sharing engine.
type WalletGenerator interface {
	Generate(kind WalletKind) (KeyPair, error)
}

// WalletAccount is the persisted, public view of one of a user's wallets.
// It carries the sharing parameters but never the private key.
type WalletAccount struct {
	PublicKey string     `json:"public_key"`
	Kind      WalletKind `json:"kind"`
	Degree    int        `json:"degree"`
	Holders   int        `json:"holders"`
}

// User groups wallet accounts under one identity.
type User struct {
	ID      string          `json:"id"`
	Wallets []WalletAccount `json:"wallets"`
}

// StoredShare is one (x, y) share in its persisted form. Coordinates and
// values are decimal strings so documents stay backend-agnostic and the
// arbitrary-precision integers survive JSON intact.
type StoredShare struct {
	X      string `json:"x"`
	Y      string `json:"y"`
	Holder string `json:"holder,omitempty"`
}

// SharingSession is the persisted document for one split wallet key: the
// sharing parameters plus every share currently in custody. The secret
// itself is never part of the document.
type SharingSession struct {
	PublicKey string        `json:"public_key"`
	Kind      WalletKind    `json:"kind"`
	UserID    string        `json:"user_id"`
	Degree    int           `json:"degree"`
	Holders   int           `json:"holders"`
	Shares    []StoredShare `json:"shares"`
}

// Threshold returns the number of shares required to reconstruct the
// session's secret.
func (s SharingSession) Threshold() int {
	return s.Degree + 1
}

// SessionSummary is session metadata with share values withheld, safe to
// return to any caller.
type SessionSummary struct {
	PublicKey    string     `json:"public_key"`
	Kind         WalletKind `json:"kind"`
	UserID       string     `json:"user_id"`
	Degree       int        `json:"degree"`
	Holders      int        `json:"holders"`
	StoredShares int        `json:"stored_shares"`
}

// Summary derives the public view of a session.
func (s SharingSession) Summary() SessionSummary {
	return SessionSummary{
		PublicKey:    s.PublicKey,
		Kind:         s.Kind,
		UserID:       s.UserID,
		Degree:       s.Degree,
		Holders:      s.Holders,
		StoredShares: len(s.Shares),
	}
}
