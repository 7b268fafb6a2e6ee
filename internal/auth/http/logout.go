package http

import (
	"encoding/json"
	"net/http"

	"github.com/lumeva/authcore/internal/auth/service"
	"github.com/lumeva/authcore/pkg/authsdk"
	"github.com/lumeva/authcore/pkg/slogx"
)

// LogoutHandler serves POST /logout. Removes the refresh token from the
// whitelist and always answers 204, whether or not the token was known.
// Idempotence keeps retried logouts and token-scanning probes uninteresting.
type LogoutHandler struct {
	TokenService *service.TokenService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Token != "" {
		if err := h.TokenService.Revoke(ctx, req.Token); err != nil {
			log.Warn("logout revoke failed", "err", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
