package middleware

import (
	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/entity"
	"tracker/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the request gate in front of protected routes.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate admits requests carrying a valid, unrevoked access token.
// When roles are given the token's role must be one of them.
func (m *AuthMiddleware) Authenticate(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			principal, err := m.authUC.Authorize(c.Request().Context(), header, roles...)
			if err != nil {
				return err
			}

			deliverycontext.SetPrincipal(c, principal)

			return next(c)
		}
	}
}
