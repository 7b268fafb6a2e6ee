package authsdk

import (
	"errors"
	"fmt"
)

// ErrSessionExpired reports that the session could not be renewed: the
// refresh token was rejected (revoked, expired, or invalid) and all local
// credentials have been cleared. The caller must authenticate again.
var ErrSessionExpired = errors.New("authsdk: session expired")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: api error %d: %s", e.StatusCode, e.Message)
}
