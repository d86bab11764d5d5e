package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const resetTokenBytes = 20 // 160 bits of entropy

// NewResetToken mints a one-time password-reset token. The plain value is
// handed to the user over a delivery side-channel and never persisted; only
// the SHA-256 digest goes to the store, so a store compromise does not
// reveal usable tokens. The digest is a fast deterministic hash (not bcrypt)
// because matching happens by recomputing it as a lookup key.
func NewResetToken(ttl time.Duration) (plain, digest string, expiry time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("reset token entropy: %w", err)
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), time.Now().UTC().Add(ttl), nil
}

// HashResetToken recomputes the stored digest for an inbound plain token.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
