package domain

import "time"

// TokenPair is what a successful login returns: the short-lived access token,
// the long-lived refresh token, and the username for client-side bookkeeping.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
}

// RefreshToken models a whitelist row. A refresh token is usable only while
// its row exists; logout deletes the row. The token itself is never stored,
// only its hex SHA-256 fingerprint.
type RefreshToken struct {
	TokenHash string
	UserID    string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
