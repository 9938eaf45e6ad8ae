// Package auth turns a verified bearer token into the principal the
// services consume. Token issuance lives in the external identity system;
// only verification happens here.
package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/service"
)

type PrincipalMiddleware struct {
	JWTSecret []byte
	Groups    *service.GroupService
}

// JWT verifies the HS256 bearer token and stores it under "user".
func (m *PrincipalMiddleware) JWT() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    "user",
		KeyFunc: func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.JWTSecret, nil
		},
	})
}

// LoadPrincipal resolves the token subject into a principal with its role
// memberships and stores it under "principal".
func (m *PrincipalMiddleware) LoadPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
		}

		p := authz.Principal{UserID: uint(sub)}
		if username, ok := claims["username"].(string); ok {
			p.Username = username
		}

		roles, err := m.Groups.RolesOf(c.Request().Context(), p.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load roles")
		}
		p.Roles = roles

		c.Set("principal", p)
		return next(c)
	}
}
