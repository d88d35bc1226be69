package services

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost resists offline brute force while keeping login latency sane.
const bcryptCost = 12

// HashPassword hashes a password with bcrypt. Output differs per call; use
// CheckPassword to verify.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword compares a password with its stored hash. A malformed hash is
// reported as a verification failure, never propagated.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
