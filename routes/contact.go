package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
)

// RegisterAdminContactRoutes registers contact-message endpoints for the dashboard
func RegisterAdminContactRoutes(rg *gin.RouterGroup) {
	rg.GET("/contact-messages", GetAllContactMessages)
	rg.POST("/contact-messages/:id/handle", MarkContactMessageHandled)
}

// SubmitContactMessage accepts a message from the public contact form
func SubmitContactMessage(c *gin.Context) {
	var request struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.ContactMessage{
		Name:    request.Name,
		Email:   request.Email,
		Subject: request.Subject,
		Body:    request.Body,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Error saving contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	publish(realtime.ResourceContactMessages, realtime.OpInsert, nil, &message)

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Thanks for reaching out, we'll get back to you soon"})
}

// GetAllContactMessages lists contact messages, newest first
func GetAllContactMessages(c *gin.Context) {
	query := database.DB.Order("created_at DESC")
	if handled := c.Query("handled"); handled != "" {
		query = query.Where("handled = ?", handled == "true")
	}

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

// MarkContactMessageHandled flags a message as dealt with
func MarkContactMessageHandled(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.ContactMessage
	if err := database.DB.First(&message, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	old := message
	message.Handled = true

	if err := database.DB.Save(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	publish(realtime.ResourceContactMessages, realtime.OpUpdate, &old, &message)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
