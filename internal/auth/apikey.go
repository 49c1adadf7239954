package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// apiKeyBytes is the entropy behind each key; 32 bytes matches the
// original key format the dashboard documents.
const apiKeyBytes = 32

// GenerateAPIKey mints a prefixed, URL-safe random API key
func GenerateAPIKey(prefix string) (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}

	return prefix + base64.RawURLEncoding.EncodeToString(buf), nil
}
