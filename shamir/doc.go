// Package shamir implements threshold secret splitting and reconstruction
// using Shamir's Secret Sharing over a prime field.
//
// A secret integer is encoded as the constant term of a random polynomial
// of degree d; shares are the polynomial's values at distinct nonzero
// coordinates. Any d+1 shares reconstruct the secret exactly via Lagrange
// interpolation at x = 0, while any d or fewer reveal nothing about it.
//
// # Arithmetic domain
//
// All engine arithmetic is performed modulo the secp256k1 field prime
// (2^256 - 2^32 - 977), so coefficients and shares are bounded field
// elements and every division during interpolation is exact through a
// modular inverse. Secrets must lie in [0, p); secp256k1 wallet private
// keys always do.
//
// # Usage
//
//	engine, err := shamir.NewEngine(2)
//	shares, err := engine.Split(secret, 5)
//	// … distribute shares; later, collect any 3 of them …
//	recovered, err := engine.Reconstruct(quorum)
//
// Split's randomness is injectable via WithRandom for reproducible tests;
// production uses crypto/rand. The engine performs no I/O and never logs;
// callers that want interpolation traces inject a callback via
// WithObserver.
//
// The Polynomial value type underlying the engine is exported as well. It
// is immutable and operates over exact arbitrary-precision integers:
// construction normalizes away trailing zero coefficients, and the zero
// polynomial reports degree -1.
package shamir
