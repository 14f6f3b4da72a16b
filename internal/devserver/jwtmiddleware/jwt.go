package jwtmiddleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"productmanager/internal/models"
)

type message struct {
	Message string `json:"message"`
}

// RequireAuth validates the Authorization bearer token and stores the
// caller's email and role on the echo context.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, message{Message: "Missing or invalid Authorization header"})
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, message{Message: "Invalid or expired token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, message{Message: "Invalid or expired token"})
			}
			email, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			c.Set("email", email)
			c.Set("role", role)

			return next(c)
		}
	}
}

// AdminOnly rejects callers whose token does not carry the ADMIN role. The
// client hides admin affordances too, but this check is the one that counts.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("role").(string)
		if role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, message{Message: "Admin role required"})
		}
		return next(c)
	}
}
