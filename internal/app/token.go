package app

import "github.com/google/uuid"

// newHoldToken returns the opaque capability attached to a hold. A v4 UUID
// from crypto/rand carries 122 random bits, so tokens cannot be guessed.
func newHoldToken() string {
	return uuid.NewString()
}
