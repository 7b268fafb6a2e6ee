package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumeva/authcore/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(t *testing.T, key []byte) http.Handler {
	t.Helper()

	verifier, err := jwtx.NewVerifier(key, "")
	require.NoError(t, err)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, _ := UsernameFromContext(r.Context())
		_, _ = w.Write([]byte(username))
	})

	return Chain(echo, AuthnMiddleware(verifier))
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	key := []byte("authn-test-key")
	handler := newGuardedEcho(t, key)

	signer, err := jwtx.NewSigner(key, time.Minute, "")
	require.NoError(t, err)

	t.Run("missing token is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expired token is 403", func(t *testing.T) {
		shortSigner, err := jwtx.NewSigner(key, time.Millisecond, "")
		require.NoError(t, err)
		token, err := shortSigner.Sign("user-1", "alice")
		require.NoError(t, err)

		time.Sleep(50 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := signer.Sign("user-1", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", rec.Body.String())
	})
}
