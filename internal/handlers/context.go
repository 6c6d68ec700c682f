package handlers

import (
	"log"
	"net/http"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's ID placed by
// the JWT middleware; 0 means unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// respondError translates a domain error into the HTTP response.
// Internal errors are logged and masked.
func respondError(c echo.Context, err error) error {
	code := apperror.MapErrorToStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request().Method, c.Path(), err)
		return echo.NewHTTPError(code, "internal server error")
	}
	return echo.NewHTTPError(code, err.Error())
}
