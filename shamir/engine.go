package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Share is one (x, y) evaluation of the secret-encoding polynomial. X is a
// nonzero coordinate unique within a sharing session; Y is the polynomial's
// value at X reduced into the field.
type Share struct {
	X *big.Int
	Y *big.Int
}

// Observer is notified once per quorum share during reconstruction with the
// share's coordinate and its Lagrange weight. It replaces in-core logging:
// the engine itself performs no I/O, callers that want interpolation traces
// inject one via WithObserver.
type Observer func(index int, x, weight *big.Int)

// Engine splits secrets into threshold shares and reconstructs them.
//
// The threshold is degree+1: any degree+1 shares recover the secret exactly,
// any fewer reveal nothing. All arithmetic is performed modulo the secp256k1
// field prime (see Prime), so shares are bounded field elements and every
// interpolation division is exact.
//
// Both operations are pure functions of their inputs plus, for Split, the
// configured random source. An Engine is safe for concurrent use as long as
// its random source is (crypto/rand.Reader is).
type Engine struct {
	degree   int
	random   io.Reader
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces the engine's random source. Production wiring keeps
// the default crypto/rand.Reader; tests substitute a deterministic reader.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.random = r }
}

// WithObserver installs a reconstruction trace callback.
func WithObserver(fn Observer) Option {
	return func(e *Engine) { e.observer = fn }
}

// NewEngine creates an engine for the given polynomial degree. The degree
// must be at least 2, making the reconstruction threshold degree+1 at
// least 3.
func NewEngine(degree int, opts ...Option) (*Engine, error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d must be at least 2", ErrInvalidParameters, degree)
	}
	e := &Engine{degree: degree, random: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Degree returns the configured polynomial degree (threshold minus one).
func (e *Engine) Degree() int {
	return e.degree
}

// Threshold returns the number of shares required for reconstruction.
func (e *Engine) Threshold() int {
	return e.degree + 1
}

// Split produces parties shares of the secret such that any degree+1 of
// them reconstruct it exactly. The secret becomes the constant term of a
// random polynomial of the engine's degree; the remaining coefficients are
// drawn uniformly from the field, with a nonzero leading coefficient so the
// degree is exact. Shares are the polynomial's values at x = 1..parties.
// The polynomial is discarded before returning; only the shares survive.
func (e *Engine) Split(secret *big.Int, parties int) ([]Share, error) {
	if parties < e.degree+1 {
		return nil, fmt.Errorf("%w: party count %d must be at least degree+1 = %d",
			ErrInvalidParameters, parties, e.degree+1)
	}
	if !inField(secret) {
		return nil, fmt.Errorf("%w: secret must be in [0, p)", ErrSecretOutOfRange)
	}

	coefficients := make([]*big.Int, e.degree+1)
	coefficients[0] = new(big.Int).Set(secret)
	for i := 1; i <= e.degree; i++ {
		c, err := randomFieldElement(e.random)
		if err != nil {
			return nil, err
		}
		coefficients[i] = c
	}
	// A zero leading coefficient would silently lower the threshold.
	for coefficients[e.degree].Sign() == 0 {
		c, err := randomFieldElement(e.random)
		if err != nil {
			return nil, err
		}
		coefficients[e.degree] = c
	}

	poly := NewPolynomial(coefficients)
	shares := make([]Share, parties)
	for i := 0; i < parties; i++ {
		x := big.NewInt(int64(i + 1))
		y := poly.EvaluateAt(x)
		shares[i] = Share{X: x, Y: y.Mod(y, fieldPrime)}
	}
	return shares, nil
}

// Reconstruct recovers the secret from any degree+1 or more shares, in any
// order. The whole input set is validated for distinct nonzero coordinates;
// the secret is then the Lagrange interpolation at x = 0 over a quorum of
// exactly degree+1 shares:
//
//	secret = Σ_i y_i · Π_{j≠i} (0 − x_j) / (x_i − x_j)  (mod p)
//
// with each division carried out via the modular inverse.
func (e *Engine) Reconstruct(shares []Share) (*big.Int, error) {
	required := e.degree + 1
	if len(shares) < required {
		return nil, &InsufficientSharesError{Required: required, Got: len(shares)}
	}

	seen := make(map[string]struct{}, len(shares))
	for _, share := range shares {
		if share.X == nil || share.X.Sign() == 0 {
			return nil, ErrZeroCoordinate
		}
		key := share.X.String()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: x = %s", ErrDuplicateCoordinate, share.X)
		}
		seen[key] = struct{}{}
	}

	quorum := shares[:required]
	secret := new(big.Int)
	for i, si := range quorum {
		numerator := big.NewInt(1)
		denominator := big.NewInt(1)
		for j, sj := range quorum {
			if i == j {
				continue
			}
			numerator = fieldMul(numerator, fieldNeg(sj.X))
			denominator = fieldMul(denominator, fieldSub(si.X, sj.X))
		}

		inverse, err := fieldInv(denominator)
		if err != nil {
			return nil, err
		}
		weight := fieldMul(numerator, inverse)
		if e.observer != nil {
			e.observer(i, new(big.Int).Set(si.X), new(big.Int).Set(weight))
		}

		secret = fieldAdd(secret, fieldMul(si.Y, weight))
	}
	return secret, nil
}
