package middleware

import (
	"context"
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWT returns the echo-jwt middleware configured for our HS256 tokens.
func JWT(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: "HS256",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
	})
}

// UserContext lifts the authenticated user id out of the verified token and
// into the request context. Must run after JWT.
func UserContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user id in token")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
