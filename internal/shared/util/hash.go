package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrincipal returns a stable identifier for a secret such as an access
// token, so the raw value never ends up in maps or logs.
func HashPrincipal(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
