package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashSecret hashes a bank-account secret. Bank secrets use the same salted
// slow-hash treatment as login passwords.
func HashSecret(secret string) (string, error) {
	return HashPassword(secret)
}

// CheckSecretHash verifies a candidate bank-account secret against its hash.
func CheckSecretHash(secret, hash string) bool {
	return CheckPasswordHash(secret, hash)
}
