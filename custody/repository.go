package custody

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// UserRepository persists user records as JSON documents keyed by user ID.
type UserRepository struct {
	store interfaces.DocumentStore
	log   *slog.Logger
}

// NewUserRepository creates a user repository over a document store.
func NewUserRepository(store interfaces.DocumentStore, log *slog.Logger) *UserRepository {
	return &UserRepository{store: store, log: log}
}

// Save writes the user record, replacing any previous version.
func (r *UserRepository) Save(ctx context.Context, user interfaces.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", user.ID, err)
	}

	if err := r.store.Put(ctx, interfaces.UserKey(user.ID), interfaces.UserDocument, data); err != nil {
		return fmt.Errorf("failed to store user %s: %w", user.ID, err)
	}

	r.log.Debug("Stored user record",
		slog.String("user_id", user.ID),
		slog.Int("wallets", len(user.Wallets)))
	return nil
}

// Get loads a user record by ID. Returns interfaces.ErrDocumentNotFound if
// no user exists.
func (r *UserRepository) Get(ctx context.Context, userID string) (interfaces.User, error) {
	data, err := r.store.Get(ctx, interfaces.UserKey(userID), interfaces.UserDocument)
	if err != nil {
		return interfaces.User{}, err
	}

	var user interfaces.User
	if err := json.Unmarshal(data, &user); err != nil {
		return interfaces.User{}, fmt.Errorf("failed to unmarshal user %s: %w", userID, err)
	}

	return user, nil
}

// ShareRepository persists sharing sessions as JSON documents keyed by
// wallet public key.
type ShareRepository struct {
	store interfaces.DocumentStore
	log   *slog.Logger
}

// NewShareRepository creates a share repository over a document store.
func NewShareRepository(store interfaces.DocumentStore, log *slog.Logger) *ShareRepository {
	return &ShareRepository{store: store, log: log}
}

// SaveSession writes the session document, replacing any previous version.
func (r *ShareRepository) SaveSession(ctx context.Context, session interfaces.SharingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session for %s: %w", session.PublicKey, err)
	}

	if err := r.store.Put(ctx, interfaces.SessionKey(session.PublicKey), interfaces.ShareDocument, data); err != nil {
		return fmt.Errorf("failed to store session for %s: %w", session.PublicKey, err)
	}

	r.log.Debug("Stored sharing session",
		slog.String("public_key", session.PublicKey),
		slog.Int("shares", len(session.Shares)))
	return nil
}

// Session loads the sharing session for a wallet public key. Returns
// interfaces.ErrDocumentNotFound if none exists.
func (r *ShareRepository) Session(ctx context.Context, publicKey string) (interfaces.SharingSession, error) {
	data, err := r.store.Get(ctx, interfaces.SessionKey(publicKey), interfaces.ShareDocument)
	if err != nil {
		return interfaces.SharingSession{}, err
	}

	var session interfaces.SharingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return interfaces.SharingSession{}, fmt.Errorf("failed to unmarshal session for %s: %w", publicKey, err)
	}

	return session, nil
}
