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

// LoginHandler serves POST /login. On success the response carries the full
// token pair; the refresh token is already whitelisted by the time the client
// sees it.
type LoginHandler struct {
	SessionService *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsMissing):
			httpx.WriteMessage(w, http.StatusBadRequest, "fill in all fields")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteMessage(w, http.StatusBadRequest, "user not found")
		case errors.Is(err, service.ErrWrongPassword):
			httpx.WriteMessage(w, http.StatusBadRequest, "wrong password")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     pair.Username,
	})
}
