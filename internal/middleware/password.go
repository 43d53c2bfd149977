package middleware

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", logger.WrapError(err, "")
	}
	return string(hash), nil
}

// ComparePasswords reports whether the plaintext password matches the
// stored bcrypt hash.
func ComparePasswords(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
