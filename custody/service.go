package custody

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
	"github.com/quorumkey/wallet-custody-backend/metrics"
	"github.com/quorumkey/wallet-custody-backend/shamir"
)

// ErrInvalidShareValue is returned when a submitted share coordinate or
// value is not a decimal integer.
var ErrInvalidShareValue = errors.New("invalid share value")

// Service implements the custody operations: wallet creation with key
// splitting, share submission, and secret recovery.
type Service struct {
	users   *UserRepository
	shares  *ShareRepository
	wallets interfaces.WalletGenerator
	log     *slog.Logger
}

// NewService creates a custody service over a document store.
func NewService(store interfaces.DocumentStore, wallets interfaces.WalletGenerator, log *slog.Logger) *Service {
	return &Service{
		users:   NewUserRepository(store, log),
		shares:  NewShareRepository(store, log),
		wallets: wallets,
		log:     log,
	}
}

// CreateUser generates an Ethereum and a Bitcoin wallet, splits each
// private key into holders shares with reconstruction threshold degree+1,
// persists the sharing sessions and the user record, and returns the user.
// The private keys never leave this method.
func (s *Service) CreateUser(ctx context.Context, degree, holders int) (interfaces.User, error) {
	start := time.Now()
	user, err := s.createUser(ctx, degree, holders)
	metrics.RecordOperation(metrics.OpCreateUser, err, time.Since(start))
	return user, err
}

func (s *Service) createUser(ctx context.Context, degree, holders int) (interfaces.User, error) {
	engine, err := shamir.NewEngine(degree)
	if err != nil {
		return interfaces.User{}, err
	}
	if holders < engine.Threshold() {
		return interfaces.User{}, fmt.Errorf("%w: %d holders cannot meet threshold %d",
			shamir.ErrInvalidParameters, holders, engine.Threshold())
	}

	user := interfaces.User{ID: uuid.NewString()}

	for _, kind := range []interfaces.WalletKind{interfaces.WalletEthereum, interfaces.WalletBitcoin} {
		pair, err := s.wallets.Generate(kind)
		if err != nil {
			return interfaces.User{}, fmt.Errorf("failed to generate %s wallet: %w", kind, err)
		}

		secret, err := ParseSecretHex(pair.PrivateKeyHex)
		if err != nil {
			return interfaces.User{}, err
		}

		split, err := engine.Split(secret, holders)
		if err != nil {
			return interfaces.User{}, err
		}

		session := interfaces.SharingSession{
			PublicKey: pair.PublicKey,
			Kind:      kind,
			UserID:    user.ID,
			Degree:    degree,
			Holders:   holders,
			Shares:    storedShares(split),
		}
		if err := s.shares.SaveSession(ctx, session); err != nil {
			return interfaces.User{}, err
		}

		user.Wallets = append(user.Wallets, interfaces.WalletAccount{
			PublicKey: pair.PublicKey,
			Kind:      kind,
			Degree:    degree,
			Holders:   holders,
		})

		s.log.Info("Created wallet under custody",
			slog.String("user_id", user.ID),
			slog.String("kind", string(kind)),
			slog.String("public_key", pair.PublicKey),
			slog.Int("degree", degree),
			slog.Int("holders", holders))
	}

	if err := s.users.Save(ctx, user); err != nil {
		return interfaces.User{}, err
	}

	return user, nil
}

// User loads a user record by ID.
func (s *Service) User(ctx context.Context, userID string) (interfaces.User, error) {
	start := time.Now()
	user, err := s.users.Get(ctx, userID)
	metrics.RecordOperation(metrics.OpGetUser, err, time.Since(start))
	return user, err
}

// SubmitShare adds one externally held share to an existing sharing
// session. Shares with a duplicate or zero x coordinate are rejected.
func (s *Service) SubmitShare(ctx context.Context, publicKey string, share interfaces.StoredShare) (interfaces.SessionSummary, error) {
	start := time.Now()
	summary, err := s.submitShare(ctx, publicKey, share)
	metrics.RecordOperation(metrics.OpSubmitShare, err, time.Since(start))
	return summary, err
}

func (s *Service) submitShare(ctx context.Context, publicKey string, share interfaces.StoredShare) (interfaces.SessionSummary, error) {
	x, y, err := parseShare(share)
	if err != nil {
		return interfaces.SessionSummary{}, err
	}
	if x.Sign() <= 0 {
		return interfaces.SessionSummary{}, fmt.Errorf("%w: x=%s", shamir.ErrZeroCoordinate, x)
	}

	session, err := s.shares.Session(ctx, publicKey)
	if err != nil {
		return interfaces.SessionSummary{}, err
	}

	for _, stored := range session.Shares {
		if stored.X == x.String() {
			return interfaces.SessionSummary{}, fmt.Errorf("%w: x=%s already in custody",
				shamir.ErrDuplicateCoordinate, x)
		}
	}

	session.Shares = append(session.Shares, interfaces.StoredShare{
		X:      x.String(),
		Y:      y.String(),
		Holder: share.Holder,
	})
	if err := s.shares.SaveSession(ctx, session); err != nil {
		return interfaces.SessionSummary{}, err
	}

	s.log.Info("Share submitted",
		slog.String("public_key", publicKey),
		slog.String("holder", share.Holder),
		slog.Int("stored_shares", len(session.Shares)))

	return session.Summary(), nil
}

// Session returns session metadata for a wallet public key, with share
// values withheld.
func (s *Service) Session(ctx context.Context, publicKey string) (interfaces.SessionSummary, error) {
	start := time.Now()
	session, err := s.shares.Session(ctx, publicKey)
	metrics.RecordOperation(metrics.OpGetSession, err, time.Since(start))
	if err != nil {
		return interfaces.SessionSummary{}, err
	}
	return session.Summary(), nil
}

// RecoverSecret reconstructs the private key for a wallet from the shares
// in custody and returns it as 64-character hex.
func (s *Service) RecoverSecret(ctx context.Context, publicKey string) (string, error) {
	start := time.Now()
	secret, err := s.recoverSecret(ctx, publicKey)
	metrics.RecordOperation(metrics.OpRecoverSecret, err, time.Since(start))
	return secret, err
}

func (s *Service) recoverSecret(ctx context.Context, publicKey string) (string, error) {
	session, err := s.shares.Session(ctx, publicKey)
	if err != nil {
		return "", err
	}

	engine, err := shamir.NewEngine(session.Degree, shamir.WithObserver(s.interpolationObserver(publicKey)))
	if err != nil {
		return "", err
	}

	shares := make([]shamir.Share, 0, len(session.Shares))
	for _, stored := range session.Shares {
		x, y, err := parseShare(stored)
		if err != nil {
			return "", err
		}
		shares = append(shares, shamir.Share{X: x, Y: y})
	}

	secret, err := engine.Reconstruct(shares)
	if err != nil {
		return "", err
	}

	s.log.Info("Secret recovered",
		slog.String("public_key", publicKey),
		slog.Int("shares_used", engine.Threshold()))

	return EncodeSecretHex(secret), nil
}

// interpolationObserver traces Lagrange weights at debug level, keyed by
// the session's public key.
func (s *Service) interpolationObserver(publicKey string) shamir.Observer {
	return func(index int, x, weight *big.Int) {
		s.log.Debug("Interpolation step",
			slog.String("public_key", publicKey),
			slog.Int("share_index", index),
			slog.String("x", x.String()))
	}
}

func parseShare(share interfaces.StoredShare) (x, y *big.Int, err error) {
	x, ok := new(big.Int).SetString(share.X, 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: x=%q", ErrInvalidShareValue, share.X)
	}
	y, ok = new(big.Int).SetString(share.Y, 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: y=%q", ErrInvalidShareValue, share.Y)
	}
	return x, y, nil
}

func storedShares(shares []shamir.Share) []interfaces.StoredShare {
	stored := make([]interfaces.StoredShare, len(shares))
	for i, share := range shares {
		stored[i] = interfaces.StoredShare{
			X:      share.X.String(),
			Y:      share.Y.String(),
			Holder: "custody",
		}
	}
	return stored
}
