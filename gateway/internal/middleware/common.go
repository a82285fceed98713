package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
)

func Common() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		ecM.Logger(),
		ecM.Secure(),
		CORS(),
	}
}

// CORS allows the React dev frontend. Origins are fixed, not a
// wildcard, so credentialed requests keep working.
func CORS() echo.MiddlewareFunc {
	return ecM.CORSWithConfig(ecM.CORSConfig{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:3001",
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           3600,
	})
}
