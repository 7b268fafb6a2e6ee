package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubService is a minimal in-memory stand-in for the auth service. It issues
// numbered access tokens and tracks which one is currently valid, so tests
// can expire tokens on demand and count refresh round trips.
type stubService struct {
	mu           sync.Mutex
	validAccess  string
	grantAccess  string // what /refresh hands out, normally == validAccess
	refreshToken string
	refreshOK    bool

	refreshCalls  atomic.Int64
	resourceCalls atomic.Int64
	logoutCalls   atomic.Int64
}

func newStubService() *stubService {
	return &stubService{
		validAccess:  "access-1",
		grantAccess:  "access-1",
		refreshToken: "refresh-1",
		refreshOK:    true,
	}
}

// expireAccess invalidates the current access token. The next refresh will
// hand out the given replacement.
func (s *stubService) expireAccess(next string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validAccess = next
	s.grantAccess = next
}

func (s *stubService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(LoginResponse{
			AccessToken:  s.validAccess,
			RefreshToken: s.refreshToken,
			Username:     "alice",
		})
	})

	mux.HandleFunc("POST /refresh", func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)

		var req RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.refreshOK || req.Token != s.refreshToken {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "refresh token rejected"})
			return
		}
		_ = json.NewEncoder(w).Encode(RefreshResponse{AccessToken: s.grantAccess})
	})

	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		s.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /profile", func(w http.ResponseWriter, r *http.Request) {
		s.resourceCalls.Add(1)

		s.mu.Lock()
		valid := "Bearer " + s.validAccess
		s.mu.Unlock()

		if r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(ProfileResponse{
			UserData: UserData{Username: "alice"},
		})
	})

	return mux
}

func newStubSession(t *testing.T) (*stubService, *Session) {
	t.Helper()

	stub := newStubService()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	session, err := NewSDKClient(srv.URL).Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	return stub, session
}

func TestDoPassesThroughWhenTokenFresh(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)

	var profile ProfileResponse
	require.NoError(t, session.GetJSON(context.Background(), "/profile", &profile))
	require.Equal(t, "alice", profile.UserData.Username)

	require.EqualValues(t, 1, stub.resourceCalls.Load())
	require.EqualValues(t, 0, stub.refreshCalls.Load())
}

func TestDoRenewsOnceAndRetries(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)
	stub.expireAccess("access-2")

	var profile ProfileResponse
	require.NoError(t, session.GetJSON(context.Background(), "/profile", &profile))
	require.Equal(t, "alice", profile.UserData.Username)

	// One failed attempt, one refresh, one successful retry.
	require.EqualValues(t, 2, stub.resourceCalls.Load())
	require.EqualValues(t, 1, stub.refreshCalls.Load())
	require.Equal(t, "access-2", session.AccessToken())

	// The refresh token is never rotated.
	require.Equal(t, "refresh-1", session.RefreshToken())
}

func TestDoRetriesAtMostOnce(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)

	// The refresh succeeds but hands back a token the resource still
	// rejects; the second 403 must surface instead of looping.
	stub.mu.Lock()
	stub.validAccess = "server-side-only"
	stub.grantAccess = "still-stale"
	stub.mu.Unlock()

	err := session.GetJSON(context.Background(), "/profile", &ProfileResponse{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	require.EqualValues(t, 2, stub.resourceCalls.Load())
	require.EqualValues(t, 1, stub.refreshCalls.Load())
}

func TestDoTearsDownWhenRefreshRejected(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)
	stub.expireAccess("access-2")

	stub.mu.Lock()
	stub.refreshOK = false
	stub.mu.Unlock()

	err := session.GetJSON(context.Background(), "/profile", &ProfileResponse{})
	require.ErrorIs(t, err, ErrSessionExpired)

	// Credentials are cleared and a best-effort logout went out.
	require.Empty(t, session.AccessToken())
	require.Empty(t, session.RefreshToken())
	require.Empty(t, session.Username())
	require.EqualValues(t, 1, stub.logoutCalls.Load())

	// A session with no credentials fails fast without hitting the wire.
	resourceCalls := stub.resourceCalls.Load()
	err = session.GetJSON(context.Background(), "/profile", &ProfileResponse{})
	require.ErrorIs(t, err, ErrSessionExpired)
	require.EqualValues(t, resourceCalls, stub.resourceCalls.Load())
}

func TestConcurrentRenewalRefreshesOnce(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)
	stub.expireAccess("access-2")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = session.GetJSON(context.Background(), "/profile", &ProfileResponse{})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Every goroutine saw the same stale token, but only the first one
	// through the lock performed a refresh round trip.
	require.EqualValues(t, 1, stub.refreshCalls.Load())
}

func TestLogoutClearsAndRevokes(t *testing.T) {
	t.Parallel()

	stub, session := newStubSession(t)

	require.NoError(t, session.Logout(context.Background()))
	require.Empty(t, session.AccessToken())
	require.Empty(t, session.RefreshToken())
	require.EqualValues(t, 1, stub.logoutCalls.Load())

	// Second logout is a local no-op.
	require.NoError(t, session.Logout(context.Background()))
	require.EqualValues(t, 1, stub.logoutCalls.Load())
}
