package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/notification-service/internal/entity"
	"github.com/ds124wfegd/notification-service/internal/service"

	"github.com/gin-gonic/gin"
)

type sendNotificationBody struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

type NotificationHandler struct {
	service *service.Service
}

func NewNotificationHandler(service *service.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var body sendNotificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Send.Execute(c.Request.Context(), service.SendNotificationRequest{
		RecipientID: body.RecipientID,
		Content:     body.Content,
		Category:    body.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": toHTTP(resp.Notification)})
}

func (h *NotificationHandler) ReadNotification(c *gin.Context) {
	id := c.Param("id")

	err := h.service.Read.Execute(c.Request.Context(), service.ReadNotificationRequest{NotificationID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) GetRecipientNotifications(c *gin.Context) {
	recipientID := c.Param("recipientId")

	resp, err := h.service.List.Execute(c.Request.Context(), service.GetRecipientNotificationsRequest{RecipientID: recipientID})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": toHTTPList(resp.Notifications)})
}

func (h *NotificationHandler) CountRecipientNotifications(c *gin.Context) {
	recipientID := c.Param("recipientId")

	resp, err := h.service.Count.Execute(c.Request.Context(), service.CountRecipientNotificationsRequest{RecipientID: recipientID})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": resp.Count})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		// logged by middleware.Logger, never sent to the client
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
