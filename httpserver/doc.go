// Package httpserver provides the HTTP API for the wallet-custody service.
//
// # API Endpoints
//
//   - POST /api/users — create a user with an Ethereum and a Bitcoin
//     wallet; each private key is split into shares and placed in custody.
//   - GET /api/users/{user_id} — fetch a user record.
//   - POST /api/shares/{public_key} — submit one externally held share
//     into the wallet's sharing session.
//   - GET /api/shares/{public_key} — session metadata, share values
//     withheld.
//   - POST /api/secrets/{public_key}/recover — reconstruct and return the
//     wallet's private key.
//
// # Operational Endpoints
//
//   - GET /livez — liveness check.
//   - GET /readyz — readiness check, controlled by drain state.
//   - GET /drain — mark the server not ready ahead of shutdown.
//   - GET /undrain — mark the server ready again.
//   - /debug — pprof profiler, when enabled.
//
// Prometheus metrics are served on a separate listener.
package httpserver
