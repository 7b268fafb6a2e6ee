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

// RegisterHandler serves POST /register. Creates an account but does not
// establish a session; the client logs in afterwards.
type RegisterHandler struct {
	SessionService *service.SessionService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := h.SessionService.Register(ctx, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsMissing):
			httpx.WriteMessage(w, http.StatusBadRequest, "fill in all fields")
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteMessage(w, http.StatusBadRequest, "username taken")
		default:
			log.Error("register failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, "OK")
}
