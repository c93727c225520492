package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// fieldPrime is the secp256k1 field prime, 2^256 - 2^32 - 977. It is larger
// than any secp256k1 wallet private key, so every secret this service splits
// is a valid field element.
var fieldPrime *big.Int

func init() {
	fieldPrime = new(big.Int)
	fieldPrime.SetString("115792089237316195423570985008687907853269984665640564039457584007908834671663", 10)
}

// Prime returns a copy of the prime modulus all engine arithmetic is
// performed under.
func Prime() *big.Int {
	return new(big.Int).Set(fieldPrime)
}

// fieldAdd computes (a + b) mod p.
func fieldAdd(a, b *big.Int) *big.Int {
	result := new(big.Int).Add(a, b)
	return result.Mod(result, fieldPrime)
}

// fieldSub computes (a - b) mod p.
func fieldSub(a, b *big.Int) *big.Int {
	result := new(big.Int).Sub(a, b)
	return result.Mod(result, fieldPrime)
}

// fieldMul computes (a * b) mod p.
func fieldMul(a, b *big.Int) *big.Int {
	result := new(big.Int).Mul(a, b)
	return result.Mod(result, fieldPrime)
}

// fieldNeg computes (-a) mod p.
func fieldNeg(a *big.Int) *big.Int {
	result := new(big.Int).Neg(a)
	return result.Mod(result, fieldPrime)
}

// fieldInv computes the multiplicative inverse of a mod p. The inverse is
// undefined only for multiples of p, which distinct nonzero coordinates can
// never produce.
func fieldInv(a *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, fieldPrime)
	if inv == nil {
		return nil, fmt.Errorf("%w: no inverse for %s", ErrModularInverseUndefined, a)
	}
	return inv, nil
}

// inField reports whether a is a canonical field element, 0 <= a < p.
func inField(a *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(fieldPrime) < 0
}

// randomFieldElement draws a uniform element of [0, p) from r. The caller
// supplies crypto/rand.Reader in production and a deterministic reader in
// tests.
func randomFieldElement(r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	coeff, err := rand.Int(r, fieldPrime)
	if err != nil {
		return nil, fmt.Errorf("shamir: drawing random field element: %w", err)
	}
	return coeff, nil
}
