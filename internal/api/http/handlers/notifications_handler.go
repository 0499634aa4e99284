package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/citrapricylia-am/loopout-app/internal/api/dto"
	"github.com/citrapricylia-am/loopout-app/internal/service"
)

// NotificationsHandler exposes transient admin notices.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	notifications, err := h.service.ListLive(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        notification.ID,
			TicketID:  notification.TicketID,
			Message:   notification.Message,
			CreatedAt: notification.CreatedAt,
		})
	}
	return c.JSON(items)
}
