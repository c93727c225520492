package shamir

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters is returned when the sharing degree or party
	// count does not satisfy the scheme's constraints.
	ErrInvalidParameters = errors.New("shamir: invalid sharing parameters")

	// ErrInsufficientShares is returned when fewer than degree+1 shares
	// are supplied to reconstruction.
	ErrInsufficientShares = errors.New("shamir: insufficient shares for reconstruction")

	// ErrDuplicateCoordinate is returned when two supplied shares carry
	// the same X coordinate.
	ErrDuplicateCoordinate = errors.New("shamir: duplicate share coordinate")

	// ErrZeroCoordinate is returned when a share carries a zero or missing
	// X coordinate. Evaluating at zero would expose the secret directly.
	ErrZeroCoordinate = errors.New("shamir: share coordinate must be non-zero")

	// ErrModularInverseUndefined signals a division during interpolation
	// that has no inverse in the field. With a prime modulus and distinct
	// coordinates this indicates an implementation defect, not bad input.
	ErrModularInverseUndefined = errors.New("shamir: modular inverse undefined")

	// ErrSecretOutOfRange is returned when the secret is negative or not
	// smaller than the field prime.
	ErrSecretOutOfRange = errors.New("shamir: secret outside the prime field")
)

// InsufficientSharesError reports how many shares reconstruction needed
// versus how many it was given. It matches ErrInsufficientShares under
// errors.Is.
type InsufficientSharesError struct {
	Required int
	Got      int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("shamir: insufficient shares: required %d, got %d", e.Required, e.Got)
}

func (e *InsufficientSharesError) Unwrap() error {
	return ErrInsufficientShares
}
