package handler

import (
	"net/http"

	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, "OK", map[string]string{"status": "ok"})
}

// AdminPing answers only to administrators.
func AdminPing(c echo.Context) error {
	principal, _ := deliverycontext.GetPrincipal(c)

	data := map[string]any{"pong": true}
	if principal != nil {
		data["user_id"] = principal.UserID
	}

	return response.Success(c, http.StatusOK, "pong", data)
}
