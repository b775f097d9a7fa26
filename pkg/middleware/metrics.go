package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/CloudArcade/GameGate/pkg/infra/prometheus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		method := c.Method()
		path := c.Path()
		status := strconv.Itoa(c.Response().StatusCode())

		prometheus.RequestTotal.WithLabelValues(method, path, status).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(method, path).
				Observe(float64(time.Since(start).Milliseconds()))
		}

		return err
	}
}
