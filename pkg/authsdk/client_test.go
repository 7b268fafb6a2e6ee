package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Username == "taken" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "username taken"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "OK"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)

	require.NoError(t, client.Register(context.Background(), "alice", "hunter2"))

	err := client.Register(context.Background(), "taken", "hunter2")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "username taken", apiErr.Message)
}

func TestLoginFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "wrong password"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	_, err := NewSDKClient(srv.URL).Login(context.Background(), "alice", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "wrong password", apiErr.Message)
}
