package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/core/auth"
	"github.com/inkwell-blog/inkwell/internal/core/domain"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

const avatarFolder = "avatars"

// UserService implements the credential lifecycle: registration, login,
// refresh-token rotation, logout, and the password change/forgot/reset flows.
type UserService struct {
	repo     ports.UserRepository
	uploader ports.Uploader
	mailer   ports.Mailer
	tokens   *auth.TokenIssuer
	resetTTL time.Duration
	log      zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	uploader ports.Uploader,
	mailer ports.Mailer,
	tokens *auth.TokenIssuer,
	resetTTL time.Duration,
	log zerolog.Logger,
) *UserService {
	if resetTTL <= 0 {
		resetTTL = 20 * time.Minute
	}
	return &UserService{
		repo:     repo,
		uploader: uploader,
		mailer:   mailer,
		tokens:   tokens,
		resetTTL: resetTTL,
		log:      log,
	}
}

// Tokens exposes the issuer so the transport layer can size cookie lifetimes.
func (s *UserService) Tokens() *auth.TokenIssuer { return s.tokens }

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	if in.Avatar.Reader == nil {
		return nil, fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}

	avatarURL, err := s.uploader.Upload(ctx, avatarFolder, in.Avatar)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("avatar upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     domain.NormalizeUsername(in.Username),
		Email:        domain.NormalizeEmail(in.Email),
		FullName:     in.FullName,
		PasswordHash: hash,
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness of username and email is enforced by the store's unique
	// indexes; a duplicate insert surfaces as ErrUserExists.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *UserService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.repo.FindByIdentifier(ctx, domain.NormalizeUsername(identifier))
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return result, nil
}

// Refresh rotates the session. The inbound raw token must carry a valid
// signature and expiry, resolve to a user, and equal the stored value
// byte-for-byte. A verified token that differs from the stored one is the
// reuse signal for a rotated-out token.
func (s *UserService) Refresh(ctx context.Context, rawToken string) (*ports.AuthResult, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if rawToken != user.RefreshToken {
		s.log.Warn().Str("user_id", user.ID).Msg("rotated-out refresh token presented")
		return nil, domain.ErrTokenMismatch
	}

	return s.issueSession(ctx, user)
}

// Logout clears the stored refresh token. Safe to call repeatedly.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.SetRefreshToken(ctx, userID, ""); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.SetPasswordHash(ctx, userID, hash)
}

func (s *UserService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrEmailNotRegistered
		}
		return err
	}

	plain, digest, expiry, err := auth.NewResetToken(s.resetTTL)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, user.ID, digest, expiry); err != nil {
		return err
	}

	resetURL := baseURL + "/" + plain
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// No dangling pending token: a reset the user can never receive
		// must not stay usable.
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error().Err(clearErr).Str("user_id", user.ID).Msg("failed to clear reset token after delivery failure")
		}
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset mail delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	s.log.Info().Str("user_id", user.ID).Time("expiry", expiry).Msg("password reset requested")
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	digest := auth.HashResetToken(token)
	user, err := s.repo.FindByResetTokenHash(ctx, digest, time.Now().UTC())
	if err != nil {
		// Only an absent record means the token is bad; a store failure
		// must not masquerade as one.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.SetPasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.repo.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	if fullName == "" || email == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.UpdateProfile(ctx, userID, fullName, domain.NormalizeEmail(email))
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, avatar ports.FileUpload) (*domain.User, error) {
	if avatar.Reader == nil {
		return nil, fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}

	avatarURL, err := s.uploader.Upload(ctx, avatarFolder, avatar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	return s.repo.UpdateAvatarURL(ctx, userID, avatarURL)
}

// issueSession mints a fresh access/refresh pair and persists the refresh
// token, replacing whatever was stored before (rotation).
func (s *UserService) issueSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
