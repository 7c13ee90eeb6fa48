package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
)

// RegisterAdminNotificationRoutes registers the admin notification endpoints
func RegisterAdminNotificationRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", GetNotifications)
	rg.GET("/notifications/unread-count", GetUnreadCount)
	rg.POST("/notifications/:id/mark-read", MarkNotificationAsRead)
	rg.POST("/notifications/mark-all-read", MarkAllNotificationsAsRead)
	rg.DELETE("/notifications/:id", DeleteNotification)
}

// GetNotifications lists admin notifications, newest first
func GetNotifications(c *gin.Context) {
	var notifications []models.Notification
	err := database.DB.Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		log.Printf("❌ Error fetching notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
	})
}

// GetUnreadCount returns the number of unread notifications
func GetUnreadCount(c *gin.Context) {
	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("status = ?", models.NotificationUnread).
		Count(&count).Error
	if err != nil {
		log.Printf("❌ Error counting unread notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "unread_count": count})
}

// MarkNotificationAsRead marks a specific notification as read
func MarkNotificationAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	old := notification
	notification.Status = models.NotificationRead
	notification.UpdatedAt = time.Now()

	if err := database.DB.Save(&notification).Error; err != nil {
		log.Printf("❌ Error updating notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	publish(realtime.ResourceNotifications, realtime.OpUpdate, &old, &notification)
	c.JSON(http.StatusOK, gin.H{"success": true, "notification": notification})
}

// MarkAllNotificationsAsRead marks every unread notification as read
func MarkAllNotificationsAsRead(c *gin.Context) {
	result := database.DB.Model(&models.Notification{}).
		Where("status = ?", models.NotificationUnread).
		Updates(map[string]interface{}{"status": models.NotificationRead, "updated_at": time.Now()})
	if result.Error != nil {
		log.Printf("❌ Error marking notifications read: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	publish(realtime.ResourceNotifications, realtime.OpUpdate, nil, nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": result.RowsAffected})
}

// DeleteNotification removes a notification
func DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Delete(&models.Notification{}, id)
	if result.Error != nil {
		log.Printf("❌ Error deleting notification: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	publish(realtime.ResourceNotifications, realtime.OpDelete, nil, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterPushToken registers a push token for the authenticated user
func RegisterPushToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request struct {
		PushToken string `json:"push_token" binding:"required"`
		Platform  string `json:"platform" binding:"required"`
		DeviceID  string `json:"device_id"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingToken models.PushToken
	err := database.DB.Where("token = ?", request.PushToken).First(&existingToken).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		token := models.PushToken{
			UserID:   userID,
			Token:    request.PushToken,
			Platform: request.Platform,
			DeviceID: request.DeviceID,
			Active:   true,
		}

		if err := database.DB.Create(&token).Error; err != nil {
			log.Printf("❌ Error creating push token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register push token"})
			return
		}

		log.Printf("✅ Push token registered for user %d", userID)
	} else if err != nil {
		log.Printf("❌ Error checking existing token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	} else {
		existingToken.UserID = userID
		existingToken.Platform = request.Platform
		existingToken.DeviceID = request.DeviceID
		existingToken.Active = true
		existingToken.UpdatedAt = time.Now()

		if err := database.DB.Save(&existingToken).Error; err != nil {
			log.Printf("❌ Error updating push token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update push token"})
			return
		}

		log.Printf("✅ Push token updated for user %d", userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Push token registered successfully",
	})
}
