package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo"
)

const contextUserId = "userId"

// AuthRequired resolves the authenticated caller from a Bearer JWT
// issued by the external auth system; the `sub` claim carries the user
// id every authenticated operation runs under.
func AuthRequired(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Authorization header required"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid authorization header format"})
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or expired token"})
			}

			c.Set(contextUserId, claims.Subject)

			return next(c)
		}
	}
}

func callerId(c echo.Context) string {
	id, _ := c.Get(contextUserId).(string)

	return id
}
