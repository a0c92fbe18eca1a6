package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from a plaintext password.
// bcrypt embeds the salt and cost factor in the digest, so no extra state
// has to be stored next to the hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(bytes), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt digest. The comparison cost is dominated by the bcrypt work
// factor; neither the plaintext nor the digest is ever logged.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
