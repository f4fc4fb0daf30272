package context

import (
	"tracker/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the echo.Context key of the identity admitted by the auth middleware.
const KeyPrincipal = "principal"

// SetPrincipal stores the admitted identity on the request.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(KeyPrincipal, principal)
}

// GetPrincipal returns the admitted identity, or false on routes without the auth middleware.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(KeyPrincipal).(*entity.Principal)

	return principal, ok && principal != nil
}
