package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Routes whose latency is logged; every route is measured.
var monitoredRoutes = []string{
	"/quiz",
	"/pricing",
	"/funnel",
	"/events",
}

// PerformanceLogger records the response time of every route and logs the
// funnel routes.
func PerformanceLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := responseStatus(c, err)

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(duration.Seconds())

		path := c.Path()
		for _, prefix := range monitoredRoutes {
			if strings.HasPrefix(path, prefix) {
				log.Info().
					Str("method", c.Method()).
					Str("path", path).
					Int("status", status).
					Dur("duration", duration).
					Str("query", c.Request().URI().QueryArgs().String()).
					Msg("request")
				break
			}
		}

		return err
	}
}

// responseStatus is the status the error handler will send for err. The
// response still holds the pre-error status at this point.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
