package auth

import (
	"testing"
	"time"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "64f1c0ffee0ddba11ca7e901",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	}
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	user := testUser()

	token, err := ti.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	claims, err := ti.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess returned error: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Email != user.Email || claims.Username != user.Username || claims.FullName != user.FullName {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssuer_RefreshCarriesOnlySubject(t *testing.T) {
	ti := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := ti.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("IssueRefreshToken returned error: %v", err)
	}

	claims, err := ti.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh returned error: %v", err)
	}
	if claims.Subject != testUser().ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, testUser().ID)
	}
	if claims.Email != "" || claims.Username != "" || claims.FullName != "" {
		t.Fatalf("refresh token must not embed profile fields: %+v", claims)
	}
}

func TestTokenIssuer_SecretsAreDistinct(t *testing.T) {
	ti := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, _ := ti.IssueAccessToken(testUser())
	if _, err := ti.VerifyRefresh(access); err != domain.ErrInvalidToken {
		t.Fatalf("access token verified against refresh secret: %v", err)
	}

	refresh, _ := ti.IssueRefreshToken(testUser())
	if _, err := ti.VerifyAccess(refresh); err != domain.ErrInvalidToken {
		t.Fatalf("refresh token verified against access secret: %v", err)
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	// Constructed directly to force an already-lapsed TTL.
	ti := &TokenIssuer{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		accessTTL:     -time.Minute,
		refreshTTL:    24 * time.Hour,
	}

	token, err := ti.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}
	if _, err := ti.VerifyAccess(token); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	ti := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ti.VerifyAccess(tok); err != domain.ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestTokenIssuer_RefreshTokensAreUnique(t *testing.T) {
	ti := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	a, _ := ti.IssueRefreshToken(testUser())
	b, _ := ti.IssueRefreshToken(testUser())
	if a == b {
		t.Fatalf("two refresh tokens issued back to back must differ")
	}
}
