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

// RegisterSupportRoutes registers customer support endpoints
func RegisterSupportRoutes(rg *gin.RouterGroup) {
	rg.POST("", CreateSupportTicket)
	rg.GET("", GetMySupportTickets)
	rg.POST("/:id/messages", AddSupportMessage)
}

// RegisterAdminSupportRoutes registers admin support endpoints
func RegisterAdminSupportRoutes(rg *gin.RouterGroup) {
	rg.GET("/support-tickets", GetAllSupportTickets)
	rg.PATCH("/support-tickets/:id/status", UpdateSupportTicketStatus)
	rg.GET("/support-tickets/:id/messages", GetSupportMessages)
	rg.POST("/support-tickets/:id/reply", AddSupportMessage)
}

func ticketIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateSupportTicket opens a new support ticket with an initial message
func CreateSupportTicket(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request struct {
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	ticket := models.SupportTicket{
		UserID:        userID,
		Subject:       request.Subject,
		Status:        models.TicketStatusOpen,
		Priority:      "medium",
		LastMessageAt: &now,
	}

	if err := database.DB.Create(&ticket).Error; err != nil {
		log.Printf("❌ Error creating support ticket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}

	message := models.SupportMessage{
		TicketID:   ticket.ID,
		SenderID:   userID,
		SenderRole: models.UserRoleCustomer,
		Body:       request.Body,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Error creating initial support message: %v", err)
	}

	publish(realtime.ResourceSupportTickets, realtime.OpInsert, nil, &ticket)
	publish(realtime.ResourceSupportMessages, realtime.OpInsert, nil, &message)

	log.Printf("✅ Support ticket %d opened by user %d", ticket.ID, userID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "ticket": ticket})
}

// GetMySupportTickets lists the authenticated customer's tickets
func GetMySupportTickets(c *gin.Context) {
	userID := c.GetUint("user_id")

	var tickets []models.SupportTicket
	err := database.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&tickets).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tickets": tickets})
}

// AddSupportMessage appends a message to a ticket thread. Customers may only
// post to their own tickets; admins may reply to any.
func AddSupportMessage(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := models.UserRole(c.GetString("user_role"))
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var request struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ticket models.SupportTicket
	if err := database.DB.First(&ticket, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}

	if role == models.UserRoleCustomer && ticket.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your ticket"})
		return
	}

	message := models.SupportMessage{
		TicketID:   ticket.ID,
		SenderID:   userID,
		SenderRole: role,
		Body:       request.Body,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Error creating support message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	now := time.Now()
	database.DB.Model(&ticket).Updates(map[string]interface{}{"last_message_at": now, "updated_at": now})

	publish(realtime.ResourceSupportMessages, realtime.OpInsert, nil, &message)

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}

// GetAllSupportTickets lists all tickets for the admin dashboard
func GetAllSupportTickets(c *gin.Context) {
	query := database.DB.Preload("User").Order("updated_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []models.SupportTicket
	if err := query.Find(&tickets).Error; err != nil {
		log.Printf("❌ Error fetching support tickets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tickets": tickets})
}

// GetSupportMessages lists a ticket's messages, oldest first
func GetSupportMessages(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var messages []models.SupportMessage
	err := database.DB.Where("ticket_id = ?", id).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

// UpdateSupportTicketStatus changes a ticket's status
func UpdateSupportTicketStatus(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var request struct {
		Status models.SupportTicketStatus `json:"status" binding:"required,oneof=open in_progress resolved closed"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ticket models.SupportTicket
	if err := database.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	old := ticket
	ticket.Status = request.Status
	if err := database.DB.Save(&ticket).Error; err != nil {
		log.Printf("❌ Error updating ticket %d: %v", ticket.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	publish(realtime.ResourceSupportTickets, realtime.OpUpdate, &old, &ticket)

	log.Printf("✅ Ticket %d moved to %s", ticket.ID, ticket.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}
