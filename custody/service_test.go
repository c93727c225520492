package custody

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
	"github.com/quorumkey/wallet-custody-backend/shamir"
	"github.com/quorumkey/wallet-custody-backend/storage"
	"github.com/quorumkey/wallet-custody-backend/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGenerator returns fixed key pairs so tests can assert recovery
// against known private keys.
type fakeGenerator struct {
	pairs map[interfaces.WalletKind]interfaces.KeyPair
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{pairs: map[interfaces.WalletKind]interfaces.KeyPair{
		interfaces.WalletEthereum: {
			Kind:          interfaces.WalletEthereum,
			PublicKey:     "0x8D97689C9818892B700e27F316cc3E41e17fBeb9",
			PrivateKeyHex: "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
		},
		interfaces.WalletBitcoin: {
			Kind:          interfaces.WalletBitcoin,
			PublicKey:     "02c72d48841ef6f9fd5bb41fbbc1a1884407a5d013d4f7a3e7a27d1d7fd13aa0b8",
			PrivateKeyHex: "e331b6d69882b4cb4ea581d88e0b604039a3de5967688d3dcffdd2270c0fd109",
		},
	}}
}

func (g *fakeGenerator) Generate(kind interfaces.WalletKind) (interfaces.KeyPair, error) {
	return g.pairs[kind], nil
}

func newTestService(t *testing.T) (*Service, *fakeGenerator) {
	t.Helper()
	gen := newFakeGenerator()
	svc := NewService(storage.NewMemoryStore("test", testLogger()), gen, testLogger())
	return svc, gen
}

func TestParseSecretHex(t *testing.T) {
	secret, err := ParseSecretHex("2a")
	require.NoError(t, err)
	assert.Equal(t, int64(42), secret.Int64())

	secret, err = ParseSecretHex("0x2A")
	require.NoError(t, err)
	assert.Equal(t, int64(42), secret.Int64())

	_, err = ParseSecretHex("")
	assert.ErrorIs(t, err, ErrInvalidSecretEncoding)

	_, err = ParseSecretHex("not hex")
	assert.ErrorIs(t, err, ErrInvalidSecretEncoding)

	// The field prime itself does not fit.
	_, err = ParseSecretHex(shamir.Prime().Text(16))
	assert.ErrorIs(t, err, ErrInvalidSecretEncoding)
}

func TestEncodeSecretHex(t *testing.T) {
	encoded := EncodeSecretHex(big.NewInt(42))
	assert.Len(t, encoded, 64)
	assert.Equal(t, "2a", encoded[62:])

	// Round-trips through ParseSecretHex.
	parsed, err := ParseSecretHex(encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.Int64())
}

func TestService_CreateUser(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, 2, 3)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Len(t, user.Wallets, 2)

	assert.Equal(t, interfaces.WalletEthereum, user.Wallets[0].Kind)
	assert.Equal(t, interfaces.WalletBitcoin, user.Wallets[1].Kind)
	for _, account := range user.Wallets {
		assert.Equal(t, 2, account.Degree)
		assert.Equal(t, 3, account.Holders)
	}

	// The user record is persisted.
	loaded, err := svc.User(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, loaded)

	// Each wallet has a session holding all generated shares.
	for kind, pair := range gen.pairs {
		summary, err := svc.Session(ctx, pair.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, kind, summary.Kind)
		assert.Equal(t, user.ID, summary.UserID)
		assert.Equal(t, 2, summary.Degree)
		assert.Equal(t, 3, summary.StoredShares)
	}
}

func TestService_CreateUser_InvalidParameters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, 1, 5)
	assert.ErrorIs(t, err, shamir.ErrInvalidParameters)

	// Holders below the reconstruction threshold.
	_, err = svc.CreateUser(ctx, 3, 3)
	assert.ErrorIs(t, err, shamir.ErrInvalidParameters)
}

func TestService_RecoverSecret(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, 2, 5)
	require.NoError(t, err)

	for _, pair := range gen.pairs {
		recovered, err := svc.RecoverSecret(ctx, pair.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, pair.PrivateKeyHex, recovered)
	}
}

func TestService_RecoverSecret_UnknownWallet(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecoverSecret(context.Background(), "0xdoesnotexist")
	assert.ErrorIs(t, err, interfaces.ErrDocumentNotFound)
}

func TestService_SubmitShare(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, 2, 3)
	require.NoError(t, err)
	publicKey := gen.pairs[interfaces.WalletEthereum].PublicKey

	t.Run("accepts a fresh coordinate", func(t *testing.T) {
		summary, err := svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{
			X: "7", Y: "123456789", Holder: "holder-7",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, summary.StoredShares)
	})

	t.Run("rejects duplicate coordinates", func(t *testing.T) {
		_, err := svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{X: "1", Y: "1"})
		assert.ErrorIs(t, err, shamir.ErrDuplicateCoordinate)
	})

	t.Run("rejects zero and negative coordinates", func(t *testing.T) {
		_, err := svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{X: "0", Y: "1"})
		assert.ErrorIs(t, err, shamir.ErrZeroCoordinate)

		_, err = svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{X: "-3", Y: "1"})
		assert.ErrorIs(t, err, shamir.ErrZeroCoordinate)
	})

	t.Run("rejects non-decimal values", func(t *testing.T) {
		_, err := svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{X: "one", Y: "1"})
		assert.ErrorIs(t, err, ErrInvalidShareValue)

		_, err = svc.SubmitShare(ctx, publicKey, interfaces.StoredShare{X: "8", Y: "0xff"})
		assert.ErrorIs(t, err, ErrInvalidShareValue)
	})

	t.Run("rejects unknown sessions", func(t *testing.T) {
		_, err := svc.SubmitShare(ctx, "0xdoesnotexist", interfaces.StoredShare{X: "9", Y: "1"})
		assert.ErrorIs(t, err, interfaces.ErrDocumentNotFound)
	})
}

// End-to-end over real key generation: the key recovered from custody must
// be the key that was generated.
func TestService_RealWalletRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore("test", testLogger())
	svc := NewService(store, wallet.NewGenerator(), testLogger())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, 3, 6)
	require.NoError(t, err)

	for _, account := range user.Wallets {
		recovered, err := svc.RecoverSecret(ctx, account.PublicKey)
		require.NoError(t, err)
		assert.Len(t, recovered, 64)

		// The recovered scalar must be a valid secp256k1 private key for
		// the advertised public key.
		secret, err := ParseSecretHex(recovered)
		require.NoError(t, err)
		assert.True(t, secret.Sign() > 0)
	}
}
