package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
	"github.com/restaurantes/restaurant-api/internal/pkg/metrics"
)

const identityKey = "identity"

type identityCtxKey struct{}

// Auth validates the bearer token and injects the caller identity into both
// the echo context and the request context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return deny("unauthenticated", fmt.Errorf("%w: missing authorization header", domain.ErrUnauthorized))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return deny("unauthenticated", fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthorized))
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				return deny("unauthenticated", err)
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity stores identity on c and on its request context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), identityCtxKey{}, identity)))
}

// IdentityFrom returns the identity stored by Auth, if any.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// IdentityFromContext is the context.Context counterpart of IdentityFrom.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*domain.Identity)
	return identity, ok && identity != nil
}

func deny(reason string, err error) error {
	metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
	return err
}
