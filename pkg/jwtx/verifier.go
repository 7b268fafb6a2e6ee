package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed reports a token that is not a structurally valid JWT.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrInvalidSig reports a well-formed token whose signature does not
	// verify against this key class, or whose claims fail validation.
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	// ErrExpired reports a well-formed, correctly signed token that is past
	// its expiry (or not yet valid). Callers treat this the same as
	// ErrInvalidSig for rejection, but the distinction matters for logs.
	ErrExpired = errors.New("jwtx: token expired")
)

// Verifier checks HS256 tokens for one token class and returns the claims if
// the token is legit. Verification is pure: key material plus wall clock, no
// I/O.
type Verifier struct {
	key    []byte
	issuer string
}

// NewVerifier creates a verifier bound to one class key. Issuer is enforced
// when non-empty.
func NewVerifier(key []byte, issuer string) (*Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty verification key")
	}
	return &Verifier{key: key, issuer: issuer}, nil
}

// Verify parses and validates the token, distinguishing expired-but-well-formed
// tokens (ErrExpired) from malformed or wrongly signed ones.
func (v *Verifier) Verify(token string) (Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	parser := jwt.NewParser(options...)
	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalidSig
	}
}
