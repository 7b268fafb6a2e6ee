package store

import (
	"context"
	"errors"

	"github.com/lumeva/authcore/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate username maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

// RefreshTokens is the whitelist of currently-usable refresh tokens, keyed by
// token fingerprint. A token is valid for refresh iff its row is present AND
// its signature/expiry check passes.
type RefreshTokens interface {
	// Add inserts a whitelist row. Idempotent; re-adding the same
	// fingerprint is a no-op.
	Add(ctx context.Context, t domain.RefreshToken) error

	// Exists reports whether the fingerprint is whitelisted.
	Exists(ctx context.Context, tokenHash string) (bool, error)

	// Remove deletes the row. Idempotent; removing a missing fingerprint
	// is not an error.
	Remove(ctx context.Context, tokenHash string) error

	// DeleteExpired is optional housekeeping. Expired-but-present rows are
	// harmless (the signature check still rejects them) but pruning keeps
	// the table from growing without bound.
	DeleteExpired(ctx context.Context) error
}
