package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	key := []byte("test-access-key")
	signer, err := NewSigner(key, time.Minute, "authcore-test")
	require.NoError(t, err)

	verifier, err := NewVerifier(key, "authcore-test")
	require.NoError(t, err)

	token, err := signer.Sign("user-1", "alice")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "authcore-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsWrongKeyClass(t *testing.T) {
	t.Parallel()

	accessSigner, err := NewSigner([]byte("access-key"), time.Minute, "authcore-test")
	require.NoError(t, err)

	// A refresh verifier must never accept an access token.
	refreshVerifier, err := NewVerifier([]byte("refresh-key"), "authcore-test")
	require.NoError(t, err)

	token, err := accessSigner.Sign("user-1", "alice")
	require.NoError(t, err)

	_, err = refreshVerifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	key := []byte("short-lived-key")
	signer, err := NewSigner(key, time.Millisecond, "authcore-test")
	require.NoError(t, err)

	verifier, err := NewVerifier(key, "authcore-test")
	require.NoError(t, err)

	token, err := signer.Sign("user-1", "alice")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifier([]byte("key"), "")
	require.NoError(t, err)

	_, err = verifier.Verify("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestNewSignerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSigner(nil, time.Minute, "issuer")
	require.Error(t, err)

	_, err = NewSigner([]byte("key"), 0, "issuer")
	require.Error(t, err)
}
