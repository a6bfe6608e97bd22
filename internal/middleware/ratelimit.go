package middleware

import (
	"fmt"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/cache"
	"github.com/OliverHarrison7/TrueorScam/internal/setup"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"

	"github.com/labstack/echo/v4"
)

// NewRateLimitMiddleware rejects clients exceeding limit requests per window
// using a fixed-window counter in the shared store, keyed by client IP.
func NewRateLimitMiddleware(store cache.Store, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(cc echo.Context) error {
			c := cc.(*setup.Context)

			key := fmt.Sprintf("v1:ratelimit:%s:%d", c.RealIP(), time.Now().Unix()/int64(window.Seconds()))
			count, err := store.Incr(c.Request().Context(), key, window)
			if err != nil {
				// A broken counter store should not take the service down.
				c.Log.Warnw("Rate limit counter unavailable", "error", err.Error())
				return next(c)
			}
			if count > limit {
				return c.JSON(shared.ErrRateLimited.StatusCode, map[string]string{
					"error": shared.ErrRateLimited.Err.Error(),
				})
			}
			return next(c)
		}
	}
}
