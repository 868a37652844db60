// Package auth provides the credential and token capabilities used by the
// services: bcrypt password hashing/verification and HS256 access tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns an opaque bcrypt hash of the plaintext. The plaintext
// is never stored or logged by callers.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
