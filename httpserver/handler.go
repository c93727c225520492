package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quorumkey/wallet-custody-backend/custody"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
	"github.com/quorumkey/wallet-custody-backend/shamir"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

// Handler processes HTTP requests for the custody service: user creation
// with wallet splitting, share submission, and secret recovery.
type Handler struct {
	service *custody.Service
	log     *slog.Logger
}

// NewHandler creates a new HTTP request handler over a custody service.
func NewHandler(service *custody.Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type createUserRequest struct {
	Degree  int `json:"degree"`
	Holders int `json:"holders"`
}

type submitShareRequest struct {
	X      string `json:"x"`
	Y      string `json:"y"`
	Holder string `json:"holder,omitempty"`
}

type recoverSecretResponse struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// HandleCreateUser creates a user with an Ethereum and a Bitcoin wallet
// under custody.
//
// URL format: POST /api/users
// Request body: {"degree": 2, "holders": 3}
//
// Response: 201 with the user record; share values are never included.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Degree, req.Holders)
	if err != nil {
		h.writeError(w, r, "User creation failed", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

// HandleGetUser returns a user record by ID.
//
// URL format: GET /api/users/{user_id}
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		http.Error(w, "Missing user ID in URL", http.StatusBadRequest)
		return
	}

	user, err := h.service.User(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "User lookup failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// HandleSubmitShare stores one externally held share into a wallet's
// sharing session.
//
// URL format: POST /api/shares/{public_key}
// Request body: {"x": "7", "y": "1234...", "holder": "alice"}
//
// Response: 200 with the session summary.
func (h *Handler) HandleSubmitShare(w http.ResponseWriter, r *http.Request) {
	publicKey := r.PathValue("public_key")
	if publicKey == "" {
		http.Error(w, "Missing public key in URL", http.StatusBadRequest)
		return
	}

	var req submitShareRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		return
	}

	summary, err := h.service.SubmitShare(r.Context(), publicKey, interfaces.StoredShare{
		X:      req.X,
		Y:      req.Y,
		Holder: req.Holder,
	})
	if err != nil {
		h.writeError(w, r, "Share submission failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetSession returns sharing session metadata for a wallet. Share
// values are withheld.
//
// URL format: GET /api/shares/{public_key}
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	publicKey := r.PathValue("public_key")
	if publicKey == "" {
		http.Error(w, "Missing public key in URL", http.StatusBadRequest)
		return
	}

	summary, err := h.service.Session(r.Context(), publicKey)
	if err != nil {
		h.writeError(w, r, "Session lookup failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleRecoverSecret reconstructs a wallet's private key from the shares
// in custody.
//
// URL format: POST /api/secrets/{public_key}/recover
//
// Response: {"public_key": "...", "private_key": "<64 hex chars>"}
func (h *Handler) HandleRecoverSecret(w http.ResponseWriter, r *http.Request) {
	publicKey := r.PathValue("public_key")
	if publicKey == "" {
		http.Error(w, "Missing public key in URL", http.StatusBadRequest)
		return
	}

	privateKey, err := h.service.RecoverSecret(r.Context(), publicKey)
	if err != nil {
		h.writeError(w, r, "Secret recovery failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, recoverSecretResponse{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.Debug("Failed to decode request body", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return err
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

// writeError maps service errors onto HTTP status codes: validation
// failures are the caller's fault, missing documents are 404, unreachable
// storage is 502, everything else is 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := http.StatusInternalServerError

	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		status = reqErr.StatusCode
	case errors.Is(err, interfaces.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, interfaces.ErrBackendUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, shamir.ErrInvalidParameters),
		errors.Is(err, shamir.ErrInsufficientShares),
		errors.Is(err, shamir.ErrDuplicateCoordinate),
		errors.Is(err, shamir.ErrZeroCoordinate),
		errors.Is(err, shamir.ErrSecretOutOfRange),
		errors.Is(err, custody.ErrInvalidShareValue),
		errors.Is(err, custody.ErrInvalidSecretEncoding):
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		h.log.Error(msg, "err", err, slog.String("path", r.URL.Path))
	} else {
		h.log.Debug(msg, "err", err, slog.String("path", r.URL.Path))
	}

	http.Error(w, err.Error(), status)
}
