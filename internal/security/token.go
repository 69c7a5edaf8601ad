package security

import (
	"encoding/hex"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const tokenSalt = "menubridge-service|v1"

// ResolveToken returns the bridge authentication token, deriving a stable
// value from the shared secret when no explicit token is provided.
func ResolveToken(secret string) string {
	token := strings.TrimSpace(os.Getenv("MENUBRIDGE_TOKEN"))
	if token != "" {
		return token
	}
	return DeriveToken(secret)
}

// DeriveToken stretches the provided secret into a deterministic token.
func DeriveToken(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	key, err := scrypt.Key([]byte(secret), []byte(tokenSalt), 1<<15, 8, 1, 32)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(key)
}
