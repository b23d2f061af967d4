package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
)

// RBAC enforces role-based access control. A caller passes when any of its
// roles is in allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return deny("unauthenticated", fmt.Errorf("%w: missing identity", domain.ErrUnauthorized))
			}
			if !identity.HasAnyRole(allowedRoles...) {
				return deny("forbidden", domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

// Gate returns the authentication and authorization chain for a route, in
// that order.
func Gate(verifier ports.TokenVerifier, allowedRoles ...string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{Auth(verifier), RBAC(allowedRoles...)}
}
