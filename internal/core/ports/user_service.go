package ports

import (
	"context"
	"io"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// FileUpload is an inbound multipart file handed to the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RegisterInput carries the validated registration form.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Avatar   FileUpload
}

// AuthResult is the outcome of a successful login or refresh.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// UserService orchestrates the credential lifecycle: registration, sessions,
// and password management.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	// Refresh rotates the session: the inbound raw token must verify and
	// equal the currently stored value, after which a new pair replaces it.
	Refresh(ctx context.Context, rawToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// ForgotPassword stores a reset-token digest and dispatches the plain
	// token via the mailer. baseURL is the public prefix of the reset link.
	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) error

	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, avatar FileUpload) (*domain.User, error)
}
