package transport

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthCheck reports whether a dependency of the service is reachable.
type HealthCheck func(ctx context.Context) error

// HealthChecks maps a component name, e.g. "redis", to its check.
type HealthChecks map[string]HealthCheck

// health answers 503 as soon as one component check fails.
func health(checks HealthChecks) gin.HandlerFunc {
	return func(c *gin.Context) {
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status, code := "healthy", http.StatusOK
		components := make(gin.H, len(checks))
		for _, name := range names {
			if err := checks[name](c.Request.Context()); err != nil {
				logrus.WithError(err).WithField("component", name).Warn("Health check failed")
				components[name] = "down"
				status, code = "unhealthy", http.StatusServiceUnavailable
				continue
			}
			components[name] = "up"
		}

		c.JSON(code, gin.H{
			"status":     status,
			"service":    "notification-service",
			"components": components,
			"timestamp":  time.Now().Format(time.RFC3339),
		})
	}
}
