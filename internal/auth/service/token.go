package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lumeva/authcore/internal/auth/store"
	"github.com/lumeva/authcore/pkg/cryptox"
	"github.com/lumeva/authcore/pkg/jwtx"
	"github.com/lumeva/authcore/pkg/slogx"
)

var (
	ErrNoToken      = errors.New("no_refresh_token")
	ErrRevoked      = errors.New("refresh_token_revoked")
	ErrTokenInvalid = errors.New("refresh_token_invalid")
)

// TokenService handles refresh-token exchange and revocation.
//
// Refresh tokens are never rotated: a refresh exchange mints a new access
// token only, and the refresh token stays valid until logout or expiry.
type TokenService struct {
	Store           store.Store
	AccessSigner    *jwtx.Signer
	RefreshVerifier *jwtx.Verifier
}

// Refresh exchanges a whitelisted refresh token for a new access token.
//
// The whitelist check runs before signature verification: a token that has
// been revoked is rejected even if it would still verify, and the two cases
// are distinguishable to callers (ErrRevoked vs ErrTokenInvalid).
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return "", ErrNoToken
	}

	ok, err := s.Store.RefreshTokens().Exists(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		return "", err
	}
	if !ok {
		l.Info("refresh rejected: token not whitelisted")
		return "", ErrRevoked
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Info("refresh rejected: token invalid", slog.Any("err", err))
		return "", ErrTokenInvalid
	}

	return s.AccessSigner.Sign(claims.Subject, claims.Username)
}

// Revoke removes a refresh token from the whitelist, ending the session.
// Revoking an unknown or already-revoked token is not an error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrNoToken
	}
	return s.Store.RefreshTokens().Remove(ctx, cryptox.FingerprintToken(refreshToken))
}
