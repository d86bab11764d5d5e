package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// Claims is the decoded payload of an access or refresh token. Subject is
// the user ID. The profile fields are populated on access tokens only; the
// refresh token deliberately carries nothing but the subject so a verified
// refresh must still be cross-checked against the server-held value.
type Claims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies access and refresh tokens. The two token
// kinds use distinct secrets so leaking one does not compromise the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 10 * 24 * time.Hour
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (ti *TokenIssuer) AccessTTL() time.Duration { return ti.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (ti *TokenIssuer) RefreshTTL() time.Duration { return ti.refreshTTL }

// IssueAccessToken signs a short-lived token embedding the user's identity
// so downstream authorization needs no store lookup.
func (ti *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.accessSecret)
}

// IssueRefreshToken signs a long-lived token carrying only the user ID. The
// jti makes every issued token unique even within the same second, which the
// rotation check depends on.
func (ti *TokenIssuer) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.refreshSecret)
}

// VerifyAccess decodes and validates an access token.
func (ti *TokenIssuer) VerifyAccess(token string) (*Claims, error) {
	return verify(token, ti.accessSecret)
}

// VerifyRefresh decodes and validates a refresh token.
func (ti *TokenIssuer) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, ti.refreshSecret)
}

func verify(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
