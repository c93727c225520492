package custody

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/quorumkey/wallet-custody-backend/shamir"
)

// ErrInvalidSecretEncoding is returned when a secret is not valid hex or
// does not fit the sharing field.
var ErrInvalidSecretEncoding = errors.New("invalid secret encoding")

// ParseSecretHex decodes a hex-encoded private key into the field element
// handed to the sharing engine. An optional 0x prefix is accepted.
func ParseSecretHex(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidSecretEncoding)
	}

	secret, ok := new(big.Int).SetString(s, 16)
	if !ok || secret.Sign() < 0 {
		return nil, fmt.Errorf("%w: not a hex string", ErrInvalidSecretEncoding)
	}

	if secret.Cmp(shamir.Prime()) >= 0 {
		return nil, fmt.Errorf("%w: secret exceeds the sharing field", ErrInvalidSecretEncoding)
	}

	return secret, nil
}

// EncodeSecretHex renders a recovered secret as a 64-character hex private
// key, zero-padded to 32 bytes.
func EncodeSecretHex(secret *big.Int) string {
	return fmt.Sprintf("%064x", secret)
}
