// Package password wraps credential hashing for user accounts and
// refresh tokens.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost for stored account passwords.
const hashCost = 12

// MinLength is the shortest password an account may set.
const MinLength = 8

// Hash derives a bcrypt hash for storage.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// ValidatePassword reports whether a new password meets the minimum
// length requirement.
func ValidatePassword(plain string) bool {
	return len(plain) >= MinLength
}

// HashToken returns the hex SHA-256 of a refresh token. Tokens are
// stored hashed so a leaked table cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
