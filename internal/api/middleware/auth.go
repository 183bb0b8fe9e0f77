package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// IdentityKey is the echo context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Auth validates the JWT and injects the caller identity into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			id, ok := identityFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}
			c.Set(IdentityKey, id)

			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok
}

func identityFromClaims(claims jwt.MapClaims) (domain.Identity, bool) {
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, false
	}

	rawRole, _ := claims["role"].(string)
	role := domain.Role(rawRole)
	if !role.Valid() {
		return domain.Identity{}, false
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return domain.Identity{UserID: userID, Role: role, Name: name, Email: email}, true
}
