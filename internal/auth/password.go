package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login targets an unknown email, so
// that unknown-email and wrong-password failures take comparable time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored hash.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// BurnPasswordCheck performs a bcrypt comparison that always fails. It is
// called on the unknown-email login path to keep its timing in line with
// the wrong-password path.
func BurnPasswordCheck(password string) error {
	bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return errors.New("unknown identity")
}
