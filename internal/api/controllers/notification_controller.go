package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tourproof/internal/services"
	"tourproof/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// ListNotifications godoc
// @Summary Poll the event outbox
// @Description Events with an id greater than `after`, oldest first
// @Tags Notifications
// @Produce json
// @Param after query int false "Last seen notification id" default(0)
// @Param limit query int false "Maximum events" default(50)
// @Success 200 {object} utils.APIResponse
// @Router /notifications [get]
func (n *NotificationController) ListNotifications(c *gin.Context) {
	after, err := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid after cursor")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	notifications, err := n.notificationService.ListNotifications(c.Request.Context(), after, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notifications, "Notifications fetched successfully")
}
