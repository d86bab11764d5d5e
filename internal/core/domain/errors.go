package domain

import "errors"

// Sentinel errors for every externally visible failure mode. The HTTP error
// handler owns the mapping to status codes and envelope messages; services
// and repositories return these unwrapped or wrapped with %w.
var (
	ErrValidation         = errors.New("invalid input")
	ErrUserExists         = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrTokenMismatch = errors.New("refresh token is expired or already used")

	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
	ErrEmailNotRegistered = errors.New("user with this email does not exist")

	ErrBlogNotFound = errors.New("blog not found")

	ErrUpload   = errors.New("asset upload failed")
	ErrDelivery = errors.New("mail delivery failed")
)
