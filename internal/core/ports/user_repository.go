package ports

import (
	"context"
	"time"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// UserRepository defines persistence for user credential records. Mutations
// are field-level updates; the store's per-document atomicity is the only
// concurrency primitive relied upon.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches either username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetTokenHash matches a user whose stored digest equals digest
	// and whose reset expiry is strictly after now.
	FindByResetTokenHash(ctx context.Context, digest string, now time.Time) (*domain.User, error)

	// SetRefreshToken replaces the stored refresh token; an empty token
	// clears the field.
	SetRefreshToken(ctx context.Context, userID, token string) error
	SetPasswordHash(ctx context.Context, userID, hash string) error
	SetResetToken(ctx context.Context, userID, digest string, expiry time.Time) error
	ClearResetToken(ctx context.Context, userID string) error

	UpdateProfile(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) (*domain.User, error)
}
