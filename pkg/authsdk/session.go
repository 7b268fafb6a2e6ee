package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Session is an authenticated session with transparent access-token renewal.
//
// Do sends requests with the current access token. When the service answers
// 403 the access token has gone stale, so the session refreshes it and
// retries the original request exactly once. If the refresh itself is
// rejected the session tears down: credentials are cleared, a best-effort
// logout is sent, and ErrSessionExpired is returned.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	username     string
}

// Username returns the username this session was established for.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// AccessToken returns the current access token. It may already be stale;
// prefer Do, which handles renewal.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Do performs an authenticated request against the service. The body may be
// nil. On a 403 the session renews the access token and retries once; any
// second 403 is returned to the caller as an APIError.
func (s *Session) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, ErrSessionExpired
	}

	resp, err := s.attempt(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	// Stale access token. Renew and retry the original request once.
	resp.Body.Close()

	retryToken, err := s.renew(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.attempt(ctx, method, path, body, retryToken)
}

// GetJSON performs an authenticated GET and decodes a 200 response into out.
func (s *Session) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := s.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiErrorFrom(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Logout revokes the refresh token server-side and clears local credentials.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.accessToken = ""
	s.refreshToken = ""
	s.username = ""
	s.mu.Unlock()

	if refreshToken == "" {
		return nil
	}

	resp, err := s.client.postJSON(ctx, "/logout", LogoutRequest{Token: refreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return apiErrorFrom(resp)
	}
	return nil
}

// attempt sends one request with the given access token. The body bytes are
// re-wrapped per attempt so the retry sends the same payload.
func (s *Session) attempt(ctx context.Context, method, path string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("authsdk: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authsdk: send request: %w", err)
	}
	return resp, nil
}

// renew exchanges the refresh token for a new access token. staleToken is the
// access token that just got a 403; if another goroutine already renewed past
// it, the stored token is returned without a second refresh round trip.
func (s *Session) renew(ctx context.Context, staleToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && s.accessToken != staleToken {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", ErrSessionExpired
	}

	resp, err := s.client.postJSON(ctx, "/refresh", RefreshRequest{Token: s.refreshToken})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Refresh rejected: the session is dead. Clear credentials and fire
		// a best-effort logout so the server can drop the whitelist entry.
		refreshToken := s.refreshToken
		s.accessToken = ""
		s.refreshToken = ""
		s.username = ""

		if logoutResp, err := s.client.postJSON(ctx, "/logout", LogoutRequest{Token: refreshToken}); err == nil {
			logoutResp.Body.Close()
		}

		return "", ErrSessionExpired
	}

	var body RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("authsdk: decode refresh response: %w", err)
	}

	s.accessToken = body.AccessToken
	return s.accessToken, nil
}
