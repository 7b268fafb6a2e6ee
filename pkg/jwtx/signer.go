package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints HS256 tokens for one token class. Each class (access, refresh)
// gets its own Signer with its own secret, so a leaked refresh key cannot
// forge access tokens and vice versa.
type Signer struct {
	key    []byte
	ttl    time.Duration
	issuer string
}

// NewSigner creates an HS256 signer. The key must not be empty.
func NewSigner(key []byte, ttl time.Duration, issuer string) (*Signer, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty signing key")
	}
	if ttl <= 0 {
		return nil, errors.New("jwtx: non-positive ttl")
	}
	return &Signer{key: key, ttl: ttl, issuer: issuer}, nil
}

// TTL reports the lifetime this signer stamps into tokens.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign issues a token for the given identity with expiry now+ttl.
func (s *Signer) Sign(userID, username string) (string, error) {
	claims := NewClaims(userID, username, s.ttl, s.issuer, time.Now().UTC())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}
