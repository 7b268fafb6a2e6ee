package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lumeva/authcore/internal/auth/domain"
	"github.com/lumeva/authcore/internal/auth/store"
	"github.com/lumeva/authcore/pkg/cryptox"
	"github.com/lumeva/authcore/pkg/idx"
	"github.com/lumeva/authcore/pkg/jwtx"
	"github.com/lumeva/authcore/pkg/slogx"
)

var (
	ErrFieldsMissing = errors.New("fields_missing")
	ErrUsernameTaken = errors.New("username_taken")
	ErrUserNotFound  = errors.New("user_not_found")
	ErrWrongPassword = errors.New("wrong_password")
)

// SessionService handles account registration and session establishment.
// Login mints a fresh access/refresh pair and records the refresh token in
// the whitelist before the pair is handed out, so a token the client holds
// is always one the server will honour.
type SessionService struct {
	Store         store.Store
	AccessSigner  *jwtx.Signer
	RefreshSigner *jwtx.Signer
}

// Register creates a new account. The password is stored as an argon2id hash;
// no session is established.
func (s *SessionService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrFieldsMissing
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// whitelisted before the pair is returned.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.TokenPair{}, ErrFieldsMissing
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !ok {
		l.Info("login rejected", slog.String("user_id", user.ID))
		return domain.TokenPair{}, ErrWrongPassword
	}

	accessToken, err := s.AccessSigner.Sign(user.ID, user.Username)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := s.RefreshSigner.Sign(user.ID, user.Username)
	if err != nil {
		return domain.TokenPair{}, err
	}

	// Whitelist the refresh token before handing the pair out. Presence in
	// the whitelist is what makes a refresh token valid.
	err = s.Store.RefreshTokens().Add(ctx, domain.RefreshToken{
		TokenHash: cryptox.FingerprintToken(refreshToken),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().UTC().Add(s.RefreshSigner.TTL()),
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("session established", slog.String("user_id", user.ID))
	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
	}, nil
}
