package http

import (
	"net/http"
	"time"

	"github.com/lumeva/authcore/internal/auth/store"
	"github.com/lumeva/authcore/pkg/authsdk"
	"github.com/lumeva/authcore/pkg/httpx"
)

// ReadyzHandler is the readiness probe. Answers 503 when the database is not
// reachable, 200 otherwise.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
