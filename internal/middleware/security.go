package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders adds common security headers to every response
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := c.Response()

			res.Header().Set("X-Content-Type-Options", "nosniff")
			res.Header().Set("X-Frame-Options", "DENY")
			res.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			res.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			res.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			res.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			res.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")

			return next(c)
		}
	}
}
