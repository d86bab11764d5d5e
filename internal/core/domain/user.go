package domain

import (
	"strings"
	"time"
)

// User models a registered author on the platform.
//
// PasswordHash only ever holds a bcrypt digest; plaintext passwords never
// reach a repository. RefreshToken holds the single live refresh token for
// the user (replaced on every login/refresh, cleared on logout).
// ResetTokenHash/ResetTokenExpiry carry a pending forgot-password request;
// only the SHA-256 digest of the reset token is stored.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	PasswordHash     string    `json:"-"`
	AvatarURL        string    `json:"avatarUrl,omitempty"`
	RefreshToken     string    `json:"-"`
	ResetTokenHash   string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NormalizeUsername applies the canonical form used for uniqueness checks.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasPendingReset reports whether a usable reset token exists at instant now.
// The boundary is exclusive: a token is rejected at and after its expiry.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != "" && now.Before(u.ResetTokenExpiry)
}
