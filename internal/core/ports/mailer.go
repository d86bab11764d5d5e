package ports

import "context"

// Mailer hands the password-reset link to the delivery side-channel. An
// error means the user will never see the link, so the caller must clear the
// pending reset state.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}
