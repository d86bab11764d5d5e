package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-blog/inkwell/internal/api/metrics"
	"github.com/inkwell-blog/inkwell/internal/core/auth"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// UserHandler handles HTTP requests for the credential lifecycle.
type UserHandler struct {
	service ports.UserService
	tokens  *auth.TokenIssuer
	// resetBaseURL is the public prefix of password-reset links.
	resetBaseURL string
}

func NewUserHandler(service ports.UserService, tokens *auth.TokenIssuer, resetBaseURL string) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, resetBaseURL: resetBaseURL}
}

// Register handles POST /users/register (multipart form + avatar file).
func (h *UserHandler) Register(c echo.Context) error {
	form := registerForm{
		Username: c.FormValue("username"),
		FullName: c.FormValue("fullName"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, src, err := formFile(c, "avatar")
	if err != nil {
		return err
	}
	defer src.Close()

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Avatar:   avatar,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return respond(c, http.StatusOK, user, "User registered successfully")
}

// Login handles POST /users/login; on success both tokens are set as
// http-only secure cookies and echoed in the body.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.identity() == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}

	result, err := h.service.Login(c.Request().Context(), req.identity(), req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return respond(c, http.StatusOK, echo.Map{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "User logged in successfully")
}

// Logout handles POST /users/logout (authenticated). Clears the stored
// refresh token and both cookies; safe to call repeatedly.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	h.clearTokenCookies(c)
	return respond(c, http.StatusOK, echo.Map{}, "User logged out")
}

// RefreshToken handles POST /users/refresh-token. The inbound token is read
// from the cookie first, then the body; a successful rotation re-sets both
// cookies.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	raw := ""
	if cookie, err := c.Cookie(refreshCookie); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}

	result, err := h.service.Refresh(c.Request().Context(), raw)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return respond(c, http.StatusOK, echo.Map{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword handles POST /users/change-password (authenticated).
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Password changed successfully")
}

// ForgotPassword handles POST /users/forgot-password.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.Email, h.resetBaseURL); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return respond(c, http.StatusOK, echo.Map{}, "Password reset mail has been sent")
}

// ResetPassword handles POST /users/reset-password/:token.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ResetPassword(c.Request().Context(), c.Param("token"), req.Password, req.ConfirmPassword); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return respond(c, http.StatusOK, echo.Map{}, "Password reset successfully")
}

// Me handles GET /users/me (authenticated).
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "User fetched successfully")
}

// UpdateAccount handles PATCH /users/me (authenticated).
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateAccount(c.Request().Context(), userID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar handles PATCH /users/me/avatar (authenticated, multipart).
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	avatar, src, err := formFile(c, "avatar")
	if err != nil {
		return err
	}
	defer src.Close()

	user, err := h.service.UpdateAvatar(c.Request().Context(), userID, avatar)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "Avatar updated successfully")
}

func (h *UserHandler) setTokenCookies(c echo.Context, access, refresh string) {
	c.SetCookie(tokenCookie(accessCookie, access, h.tokens.AccessTTL()))
	c.SetCookie(tokenCookie(refreshCookie, refresh, h.tokens.RefreshTTL()))
}

func (h *UserHandler) clearTokenCookies(c echo.Context) {
	c.SetCookie(tokenCookie(accessCookie, "", -time.Second))
	c.SetCookie(tokenCookie(refreshCookie, "", -time.Second))
}

// tokenCookie builds an http-only secure cookie; a negative ttl expires it.
func tokenCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
