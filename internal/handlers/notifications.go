package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// NotificationHandler lets users read their in-app notifications.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// ListNotifications returns the logged-in user's notifications, newest
// first. Pass ?unread=true to fetch only unread ones.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Where("recipient_id = ?", userID).Order("created_at desc")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationRead marks one of the user's own notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var notification models.Notification
	if err := h.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if notification.RecipientID != userID {
		utils.Forbidden(c, "You can only mark your own notifications as read")
		return
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := h.DB.Save(&notification).Error; err != nil {
			utils.InternalServerError(c, "Failed to update notification: "+err.Error())
			return
		}
	}

	utils.Success(c, "Notification marked as read", notification)
}
