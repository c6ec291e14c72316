package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/metrics"
)

// Metrics records request counts and latencies labelled by route pattern.
// Errors from the chain are rendered here so the recorded status is the one sent.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.RequestInFlight.Inc()
		defer metrics.RequestInFlight.Dec()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.RequestTotal.WithLabelValues(c.Method(), path, status).Inc()
		metrics.RequestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		return nil
	}
}
