package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumeva/authcore/internal/auth/service"
	"github.com/lumeva/authcore/pkg/authsdk"
	"github.com/lumeva/authcore/pkg/httpx"
	"github.com/lumeva/authcore/pkg/slogx"
)

// RefreshHandler serves POST /refresh. Exchanges a whitelisted refresh token
// for a new access token. The refresh token itself is not rotated.
//
// Status semantics: 401 means no token was supplied at all, 403 means a token
// was supplied but is revoked, expired, or invalid. The client treats 403 as
// a dead session.
type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	accessToken, err := h.TokenService.Refresh(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoToken):
			httpx.WriteMessage(w, http.StatusUnauthorized, "refresh token required")
		case errors.Is(err, service.ErrRevoked), errors.Is(err, service.ErrTokenInvalid):
			httpx.WriteMessage(w, http.StatusForbidden, "refresh token rejected")
		default:
			log.Error("refresh failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{AccessToken: accessToken})
}
