package shamir

import (
	"fmt"
	"math/big"
	"strings"
)

// Polynomial is an immutable polynomial over arbitrary-precision integer
// coefficients. The index of each coefficient is its degree: coefficient 0
// is the constant term. Every operation returns a new, already-normalized
// Polynomial; a Polynomial is never mutated after construction, so values
// may be freely shared across goroutines.
type Polynomial struct {
	coefficients  []*big.Int
	indeterminate rune
}

// NewPolynomial builds a polynomial from coefficients ordered by degree,
// rendered with 'x' as the indeterminate. Trailing zero coefficients are
// stripped; an empty or all-zero input yields the canonical zero polynomial
// with a single 0 coefficient and degree -1. Coefficient values are copied.
func NewPolynomial(coefficients []*big.Int) Polynomial {
	return NewPolynomialWith(coefficients, 'x')
}

// NewPolynomialWith is NewPolynomial with an explicit indeterminate symbol.
// The symbol only affects String output.
func NewPolynomialWith(coefficients []*big.Int, indeterminate rune) Polynomial {
	end := len(coefficients)
	for end > 0 && coefficients[end-1].Sign() == 0 {
		end--
	}
	if end == 0 {
		return Polynomial{
			coefficients:  []*big.Int{big.NewInt(0)},
			indeterminate: indeterminate,
		}
	}

	copied := make([]*big.Int, end)
	for i, c := range coefficients[:end] {
		copied[i] = new(big.Int).Set(c)
	}
	return Polynomial{coefficients: copied, indeterminate: indeterminate}
}

// Coefficients returns a copy of the coefficient sequence, constant term
// first.
func (p Polynomial) Coefficients() []*big.Int {
	out := make([]*big.Int, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Coefficient returns a copy of the coefficient at the given degree, or
// zero when the degree exceeds the polynomial's.
func (p Polynomial) Coefficient(degree int) *big.Int {
	if degree < 0 || degree >= len(p.coefficients) {
		return big.NewInt(0)
	}
	return new(big.Int).Set(p.coefficients[degree])
}

// Degree returns len(coefficients)-1, or -1 for the canonical zero
// polynomial.
func (p Polynomial) Degree() int {
	if p.IsZero() {
		return -1
	}
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the canonical zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coefficients) == 1 && p.coefficients[0].Sign() == 0
}

// Add sums same-degree coefficients, padding the shorter sequence with
// zeros, and returns the normalized result.
func (p Polynomial) Add(other Polynomial) Polynomial {
	size := len(p.coefficients)
	if len(other.coefficients) > size {
		size = len(other.coefficients)
	}

	summed := make([]*big.Int, size)
	for i := range summed {
		c := new(big.Int)
		if i < len(p.coefficients) {
			c.Add(c, p.coefficients[i])
		}
		if i < len(other.coefficients) {
			c.Add(c, other.coefficients[i])
		}
		summed[i] = c
	}
	return NewPolynomialWith(summed, p.indeterminate)
}

// Sub subtracts other from p, defined as the addition of other's negation.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	return p.Add(other.negate())
}

// negate multiplies every coefficient by -1.
func (p Polynomial) negate() Polynomial {
	negated := make([]*big.Int, len(p.coefficients))
	for i, c := range p.coefficients {
		negated[i] = new(big.Int).Neg(c)
	}
	return NewPolynomialWith(negated, p.indeterminate)
}

// Mul returns the discrete convolution of the two coefficient sequences:
// the result coefficient at degree k is the sum over i+j=k of p[i]*other[j].
func (p Polynomial) Mul(other Polynomial) Polynomial {
	product := make([]*big.Int, len(p.coefficients)+len(other.coefficients)-1)
	for i := range product {
		product[i] = new(big.Int)
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j].Add(product[i+j], new(big.Int).Mul(a, b))
		}
	}
	return NewPolynomialWith(product, p.indeterminate)
}

// EvaluateAt computes p(x) by Horner's rule using exact integer arithmetic.
// EvaluateAt(0) returns exactly the constant term.
func (p Polynomial) EvaluateAt(x *big.Int) *big.Int {
	result := new(big.Int).Set(p.coefficients[len(p.coefficients)-1])
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.coefficients[i])
	}
	return result
}

// String renders the polynomial as "f(x) = c0 + c1x + c2x^2 + …". Terms
// with a zero coefficient are omitted, except the constant term which is
// always shown.
func (p Polynomial) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "f(%c) = %s", p.indeterminate, p.coefficients[0])
	for degree := 1; degree < len(p.coefficients); degree++ {
		c := p.coefficients[degree]
		if c.Sign() == 0 {
			continue
		}
		if degree == 1 {
			fmt.Fprintf(&sb, " + %s%c", c, p.indeterminate)
		} else {
			fmt.Fprintf(&sb, " + %s%c^%d", c, p.indeterminate, degree)
		}
	}
	return sb.String()
}
