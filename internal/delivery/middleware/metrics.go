package middleware

import (
	"net/http"
	"strconv"

	"tracker/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latencies labelled by route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle processes request instrumentation
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		done := m.metrics.RequestStarted(c.Request().Method)

		err := next(c)

		done(routeOf(c), strconv.Itoa(statusOf(c, err)))

		return err
	}
}

// routeOf uses the route template so that path parameters do not explode label cardinality.
func routeOf(c echo.Context) string {
	if path := c.Path(); path != "" {
		return path
	}

	return unmatchedRoute
}

// statusOf predicts the status the error handler will write for err.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) {
		return coded.HTTPCode()
	}

	return http.StatusInternalServerError
}
