package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// GenerateSecureToken returns a hex-encoded token of 2*length characters
// backed by crypto/rand. Review links must be unguessable.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
