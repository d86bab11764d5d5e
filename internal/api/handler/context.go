package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's ID injected by the Auth
// middleware. An empty value means the middleware did not run; reject with
// 401 before any service call.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
