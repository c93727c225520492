// Package wallet generates the secp256k1 key pairs whose private keys are
// the secrets placed into custody. Ethereum wallets are identified by their
// checksummed address, Bitcoin wallets by their compressed public key. The
// generator never touches storage; private key material exists only in the
// returned KeyPair.
package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// Generator implements interfaces.WalletGenerator on top of go-ethereum's
// secp256k1 primitives. Both supported chains share the curve, only the
// public identifier differs.
type Generator struct{}

// NewGenerator creates a wallet generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate creates a fresh key pair of the requested kind. The private key
// is hex-encoded without a 0x prefix, 64 characters for a 32-byte scalar.
func (g *Generator) Generate(kind interfaces.WalletKind) (interfaces.KeyPair, error) {
	if !kind.Valid() {
		return interfaces.KeyPair{}, fmt.Errorf("unsupported wallet kind: %q", kind)
	}

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return interfaces.KeyPair{}, fmt.Errorf("failed to generate key: %w", err)
	}

	var publicKey string
	switch kind {
	case interfaces.WalletEthereum:
		publicKey = crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
	case interfaces.WalletBitcoin:
		publicKey = hex.EncodeToString(crypto.CompressPubkey(&privateKey.PublicKey))
	}

	return interfaces.KeyPair{
		Kind:          kind,
		PublicKey:     publicKey,
		PrivateKeyHex: hex.EncodeToString(crypto.FromECDSA(privateKey)),
	}, nil
}
