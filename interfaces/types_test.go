package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKeys(t *testing.T) {
	// Keys are stable across derivations.
	assert.Equal(t, UserKey("alice"), UserKey("alice"))
	assert.NotEqual(t, UserKey("alice"), UserKey("bob"))

	// User and session namespaces cannot collide even for equal input.
	assert.NotEqual(t, UserKey("0xabc"), SessionKey("0xabc"))

	// Hex casing of a public key does not fork the session.
	assert.Equal(t, SessionKey("0xABCDEF"), SessionKey("0xabcdef"))

	assert.Len(t, UserKey("alice").String(), 64)
}

func TestWalletKind_Valid(t *testing.T) {
	assert.True(t, WalletEthereum.Valid())
	assert.True(t, WalletBitcoin.Valid())
	assert.False(t, WalletKind("solana").Valid())
	assert.False(t, WalletKind("").Valid())
}

func TestSharingSession_Summary(t *testing.T) {
	session := SharingSession{
		PublicKey: "0xabc",
		Kind:      WalletEthereum,
		UserID:    "user-1",
		Degree:    2,
		Holders:   5,
		Shares: []StoredShare{
			{X: "1", Y: "11"},
			{X: "2", Y: "22"},
		},
	}

	assert.Equal(t, 3, session.Threshold())

	summary := session.Summary()
	assert.Equal(t, 2, summary.StoredShares)
	assert.Equal(t, session.PublicKey, summary.PublicKey)
	assert.Equal(t, session.Degree, summary.Degree)
}

func TestNewDocumentStoreLocation(t *testing.T) {
	loc, err := NewDocumentStoreLocation("s3://bucket/prefix/?region=eu-west-1")
	assert.NoError(t, err)
	assert.Equal(t, "s3", loc.Scheme)
	assert.Equal(t, "bucket", loc.Host)
	assert.Equal(t, "eu-west-1", loc.GetParam("region"))

	_, err = NewDocumentStoreLocation("gopher://example")
	assert.ErrorIs(t, err, ErrInvalidLocationURI)
}
