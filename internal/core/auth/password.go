package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// HashPassword produces a salted bcrypt digest of plain. Empty plaintexts are
// rejected so a blank password can never reach the store. Every code path
// that sets a password goes through this function; repositories only accept
// digests.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt digest.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
