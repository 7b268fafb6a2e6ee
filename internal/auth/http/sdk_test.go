package http

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumeva/authcore/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// Drives the real server through the SDK: the session should ride out an
// access-token expiry without the caller noticing, and die cleanly once the
// refresh token is revoked.
func TestSDKTransparentRenewal(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 2*time.Second)
	ctx := context.Background()

	client := authsdk.NewSDKClient(srv.URL)
	require.NoError(t, client.Register(ctx, "dave", "hunter2"))

	session, err := client.Login(ctx, "dave", "hunter2")
	require.NoError(t, err)
	firstAccess := session.AccessToken()

	var profile authsdk.ProfileResponse
	require.NoError(t, session.GetJSON(ctx, "/profile", &profile))
	require.Equal(t, "dave", profile.UserData.Username)

	// Let the access token lapse; the next call must renew and succeed.
	time.Sleep(3 * time.Second)
	require.NoError(t, session.GetJSON(ctx, "/profile", &profile))
	require.Equal(t, "dave", profile.UserData.Username)
	require.NotEqual(t, firstAccess, session.AccessToken())

	// After logout the refresh token is revoked server-side, so the next
	// renewal attempt tears the session down.
	refreshToken := session.RefreshToken()
	require.NoError(t, session.Logout(ctx))

	relogin, err := client.Login(ctx, "dave", "hunter2")
	require.NoError(t, err)
	require.NotEqual(t, refreshToken, relogin.RefreshToken())

	time.Sleep(3 * time.Second)
	require.NoError(t, relogin.GetJSON(ctx, "/auth-check", &authsdk.AuthCheckResponse{}))
}

func TestSDKSessionExpiredAfterRevocation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 2*time.Second)
	ctx := context.Background()

	client := authsdk.NewSDKClient(srv.URL)
	require.NoError(t, client.Register(ctx, "erin", "hunter2"))
	session, err := client.Login(ctx, "erin", "hunter2")
	require.NoError(t, err)

	// Revoke out-of-band, as another device's logout would.
	resp := postJSON(t, srv.URL+"/logout", authsdk.LogoutRequest{Token: session.RefreshToken()})
	resp.Body.Close()

	// Wait for the access token to lapse so the session is forced to renew.
	time.Sleep(3 * time.Second)

	err = session.GetJSON(ctx, "/profile", &authsdk.ProfileResponse{})
	require.True(t, errors.Is(err, authsdk.ErrSessionExpired))
	require.Empty(t, session.AccessToken())
	require.Empty(t, session.RefreshToken())
}
