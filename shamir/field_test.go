package shamir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrime_IsExpectedValue(t *testing.T) {
	// secp256k1 field prime: 2^256 - 2^32 - 977.
	want := new(big.Int).Lsh(big.NewInt(1), 256)
	want.Sub(want, new(big.Int).Lsh(big.NewInt(1), 32))
	want.Sub(want, big.NewInt(977))
	assert.Equal(t, want, Prime())

	// Prime must hand out copies, not the shared modulus.
	p := Prime()
	p.SetInt64(7)
	assert.NotEqual(t, p, Prime())
}

func TestFieldOps(t *testing.T) {
	a := big.NewInt(10)
	b := big.NewInt(4)

	assert.Equal(t, big.NewInt(14), fieldAdd(a, b))
	assert.Equal(t, big.NewInt(6), fieldSub(a, b))
	assert.Equal(t, big.NewInt(40), fieldMul(a, b))

	// Subtraction wraps into [0, p).
	wrapped := fieldSub(b, a)
	assert.Equal(t, new(big.Int).Sub(fieldPrime, big.NewInt(6)), wrapped)

	// Negation likewise.
	assert.Equal(t, new(big.Int).Sub(fieldPrime, big.NewInt(10)), fieldNeg(a))
	assert.Equal(t, big.NewInt(0), fieldNeg(big.NewInt(0)))
}

func TestFieldInv(t *testing.T) {
	for _, v := range []int64{1, 2, 3, 255, 1 << 30} {
		a := big.NewInt(v)
		inv, err := fieldInv(a)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1), fieldMul(a, inv), "a * a^-1 must be 1 for a=%d", v)
	}

	_, err := fieldInv(big.NewInt(0))
	assert.ErrorIs(t, err, ErrModularInverseUndefined)

	_, err = fieldInv(Prime())
	assert.ErrorIs(t, err, ErrModularInverseUndefined)
}

func TestInField(t *testing.T) {
	assert.True(t, inField(big.NewInt(0)))
	assert.True(t, inField(new(big.Int).Sub(fieldPrime, big.NewInt(1))))
	assert.False(t, inField(nil))
	assert.False(t, inField(big.NewInt(-1)))
	assert.False(t, inField(Prime()))
}

func TestRandomFieldElement(t *testing.T) {
	for i := 0; i < 32; i++ {
		c, err := randomFieldElement(nil)
		require.NoError(t, err)
		assert.True(t, inField(c))
	}
}
