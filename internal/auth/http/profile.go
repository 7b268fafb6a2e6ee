package http

import (
	"net/http"

	"github.com/lumeva/authcore/pkg/authsdk"
	"github.com/lumeva/authcore/pkg/httpx"
)

// ProfileHandler serves GET /profile, a protected resource. Identity comes
// from the verified access token in the request context; the handler itself
// never touches the database.
type ProfileHandler struct{}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := httpx.UserIDFromContext(ctx)
	username, _ := httpx.UsernameFromContext(ctx)

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		UserData: authsdk.UserData{
			ID:       userID,
			Username: username,
			Role:     "Admin",
			Secret:   "777-XXX",
		},
	})
}

// AuthCheckHandler serves GET /auth-check, a minimal token-liveness probe for
// clients that want to test an access token without fetching anything.
type AuthCheckHandler struct{}

func (h *AuthCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username, _ := httpx.UsernameFromContext(r.Context())

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthCheckResponse{
		Message: "access token alive",
		User:    username,
	})
}
