package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of the plaintext. The same
// plaintext hashes to a different digest on every call.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// A malformed digest is treated as a mismatch, never a panic.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
