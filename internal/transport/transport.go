package transport

import (
	"time"

	"github.com/ds124wfegd/notification-service/internal/service"
	"github.com/ds124wfegd/notification-service/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(svc *service.Service, requestTimeout time.Duration, checks HealthChecks) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	handler := NewNotificationHandler(svc)

	api := router.Group("/api/v1")
	{
		notifications := api.Group("/notifications")
		{
			notifications.POST("", handler.SendNotification)
			notifications.PATCH("/:id/read", handler.ReadNotification)
		}

		recipients := api.Group("/recipients")
		{
			recipients.GET("/:recipientId/notifications", handler.GetRecipientNotifications)
			recipients.GET("/:recipientId/notifications/count", handler.CountRecipientNotifications)
		}
	}

	router.GET("/health", health(checks))

	return router
}
