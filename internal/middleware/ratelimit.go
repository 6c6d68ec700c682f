package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitWrites throttles authenticated write actions per user via
// a redis SetNX lock. Reads pass through untouched; a nil client
// disables the limiter entirely.
func RateLimitWrites(rdb *redis.Client, action string, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !isWriteMethod(c.Request().Method) {
				return next(c)
			}
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return next(c)
			}

			key := fmt.Sprintf("rate_limit:user:%d:%s", claims.UserID, action)
			wasSet, err := rdb.SetNX(c.Request().Context(), key, "locked", window).Result()
			if err != nil {
				// Redis being down must not take writes with it.
				return next(c)
			}
			if !wasSet {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, slow down")
			}
			return next(c)
		}
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
