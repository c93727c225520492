package shamir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coeffs(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestPolynomial_Normalization(t *testing.T) {
	p := NewPolynomial(coeffs(1, 2, 0, 3, 0))
	assert.Equal(t, coeffs(1, 2, 0, 3), p.Coefficients(), "trailing zeros should be stripped")
	assert.Equal(t, 3, p.Degree())

	// Interior zeros must never be truncated.
	p = NewPolynomial(coeffs(1, 2, 0, 3, 0, 0, 0))
	assert.Equal(t, coeffs(1, 2, 0, 3), p.Coefficients())
}

func TestPolynomial_Zero(t *testing.T) {
	for name, p := range map[string]Polynomial{
		"single zero": NewPolynomial(coeffs(0)),
		"all zeros":   NewPolynomial(coeffs(0, 0, 0)),
		"empty":       NewPolynomial(nil),
	} {
		assert.Equal(t, coeffs(0), p.Coefficients(), name)
		assert.Equal(t, -1, p.Degree(), name)
		assert.True(t, p.IsZero(), name)
	}
}

func TestPolynomial_Immutability(t *testing.T) {
	input := coeffs(1, 2, 3)
	p := NewPolynomial(input)

	// Mutating the input slice must not affect the polynomial.
	input[0].SetInt64(99)
	assert.Equal(t, coeffs(1, 2, 3), p.Coefficients())

	// Mutating returned coefficients must not affect the polynomial either.
	p.Coefficients()[1].SetInt64(77)
	assert.Equal(t, coeffs(1, 2, 3), p.Coefficients())

	// Arithmetic leaves the receiver untouched.
	_ = p.Add(NewPolynomial(coeffs(5, 5, 5)))
	assert.Equal(t, coeffs(1, 2, 3), p.Coefficients())
}

func TestPolynomial_Add(t *testing.T) {
	a := NewPolynomial(coeffs(1, 2, 0, 3))
	b := NewPolynomial(coeffs(1, 2, 0, 3, 4))
	assert.Equal(t, coeffs(2, 4, 0, 6, 4), a.Add(b).Coefficients())

	// Opposite coefficients cancel to the canonical zero polynomial.
	neg := NewPolynomial(coeffs(-1, -2, 0, -3))
	sum := a.Add(neg)
	assert.True(t, sum.IsZero())
	assert.Equal(t, -1, sum.Degree())
}

func TestPolynomial_Sub(t *testing.T) {
	a := NewPolynomial(coeffs(1, 2, 3))
	assert.True(t, a.Sub(a).IsZero())

	b := NewPolynomial(coeffs(3, 2, 1))
	assert.Equal(t, coeffs(-2, 0, 2), a.Sub(b).Coefficients())

	negA := NewPolynomial(coeffs(-1, -2, -3))
	negB := NewPolynomial(coeffs(3, 2, 1))
	assert.Equal(t, coeffs(-4, -4, -4), negA.Sub(negB).Coefficients())
}

func TestPolynomial_AddSubRoundTrip(t *testing.T) {
	a := NewPolynomial(coeffs(7, 0, -5, 11))
	b := NewPolynomial(coeffs(-3, 9, 2))
	assert.Equal(t, a.Coefficients(), a.Add(b).Sub(b).Coefficients())
}

func TestPolynomial_Mul(t *testing.T) {
	a := NewPolynomial(coeffs(1, 2, 3))

	one := NewPolynomial(coeffs(1))
	assert.Equal(t, coeffs(1, 2, 3), a.Mul(one).Coefficients())

	b := NewPolynomial(coeffs(3, 2, 1))
	assert.Equal(t, coeffs(3, 8, 14, 8, 3), a.Mul(b).Coefficients())

	negB := NewPolynomial(coeffs(-3, -2, -1))
	assert.Equal(t, coeffs(-3, -8, -14, -8, -3), a.Mul(negB).Coefficients())
}

func TestPolynomial_EvaluateAt(t *testing.T) {
	p := NewPolynomial(coeffs(1, 2, 3))
	assert.Equal(t, big.NewInt(1), p.EvaluateAt(big.NewInt(0)), "evaluation at 0 is the constant term")

	p = NewPolynomial(coeffs(1, 2, 3, 4))
	assert.Equal(t, big.NewInt(586), p.EvaluateAt(big.NewInt(5)))

	p = NewPolynomial(coeffs(-1, 2, -3, 4))
	assert.Equal(t, big.NewInt(-586), p.EvaluateAt(big.NewInt(-5)))
}

func TestPolynomial_EvaluateAt_LargeValues(t *testing.T) {
	// Exact integer arithmetic must hold well past 64-bit precision.
	big1 := new(big.Int).Lsh(big.NewInt(1), 200)
	p := NewPolynomial([]*big.Int{big1, big1, big1})

	x := new(big.Int).Lsh(big.NewInt(1), 100)
	want := new(big.Int).Set(big1)
	want.Add(want, new(big.Int).Mul(big1, x))
	want.Add(want, new(big.Int).Mul(big1, new(big.Int).Mul(x, x)))

	require.Equal(t, want, p.EvaluateAt(x))
}

func TestPolynomial_String(t *testing.T) {
	assert.Equal(t, "f(x) = 1 + 2x + 3x^3", NewPolynomial(coeffs(1, 2, 0, 3)).String())
	assert.Equal(t, "f(x) = 0", NewPolynomial(coeffs(0)).String())
	assert.Equal(t, "f(x) = 5", NewPolynomial(coeffs(5)).String())
	assert.Equal(t, "f(y) = 1 + 2y^2", NewPolynomialWith(coeffs(1, 0, 2), 'y').String())
}

func TestPolynomial_Coefficient(t *testing.T) {
	p := NewPolynomial(coeffs(4, 0, 7))
	assert.Equal(t, big.NewInt(4), p.Coefficient(0))
	assert.Equal(t, big.NewInt(0), p.Coefficient(1))
	assert.Equal(t, big.NewInt(7), p.Coefficient(2))
	assert.Equal(t, big.NewInt(0), p.Coefficient(5))
	assert.Equal(t, big.NewInt(0), p.Coefficient(-1))
}
