package utils

import "golang.org/x/crypto/bcrypt"

// MinPasswordLen is the shortest password accepted when setting or
// changing a password.
const MinPasswordLen = 6

// HashPassword returns a bcrypt hash using the given cost. bcrypt
// generates a fresh random salt per call, so hashing the same plaintext
// twice yields different digests.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
