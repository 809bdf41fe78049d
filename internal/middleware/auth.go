package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/auth"
)

// UserIDKey is the echo context key under which TokenAuth stores the
// authenticated user identifier.
const UserIDKey = "user_id"

// TokenHeader carries the session token on protected routes.
const TokenHeader = "x-auth-token"

// TokenAuth returns middleware that gates protected routes on a valid
// session token. Each rejection is a hard stop: a missing header returns
// 401 immediately and never reaches verification, and a failed
// verification returns 401 without calling the next handler.
func TokenAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "no token, authorization denied"})
			}
			userID, err := auth.VerifyToken(token, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "token is not valid"})
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
