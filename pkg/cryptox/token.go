package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintToken returns the hex-encoded SHA-256 digest of a token. The
// whitelist stores fingerprints rather than raw tokens, so a read of the
// database never yields a usable credential.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
