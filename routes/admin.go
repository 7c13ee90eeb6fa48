package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
	"laundry-service-server/services"
	"laundry-service-server/utils"
)

// RegisterAdminRoutes registers dashboard-level admin endpoints
func RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", GetCurrentAdmin)
	rg.GET("/stats", GetDashboardStats)
	rg.GET("/realtime/status", GetRealtimeStatus)
	rg.GET("/users", GetAllUsers)
	rg.PATCH("/users/:id/status", UpdateUserStatus)
	rg.DELETE("/users/:id", DeleteUser)
}

// AdminLogin authenticates a staff or admin account
func AdminLogin(c *gin.Context) {
	var request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", request.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	if user.Status == models.UserStatusSuspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		return
	}

	if !utils.CheckPasswordHash(request.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	jwtService := services.NewJWTService()
	tokens, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		log.Printf("❌ Error generating admin tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	log.Printf("🔐 Admin login: %s (user %d)", user.Email, user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "tokens": tokens})
}

// GetCurrentAdmin returns the authenticated admin's profile
func GetCurrentAdmin(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetDashboardStats aggregates the counters shown on the dashboard home
func GetDashboardStats(c *gin.Context) {
	var (
		totalOrders      int64
		pendingOrders    int64
		inProgressOrders int64
		completedToday   int64
		totalCustomers   int64
		openTickets      int64
		activeSubs       int64
		unreadNotifs     int64
	)

	database.DB.Model(&models.Order{}).Count(&totalOrders)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusInProgress).Count(&inProgressOrders)

	startOfDay := time.Now().Truncate(24 * time.Hour)
	database.DB.Model(&models.Order{}).
		Where("status = ? AND updated_at >= ?", models.OrderStatusCompleted, startOfDay).
		Count(&completedToday)

	database.DB.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer).Count(&totalCustomers)
	database.DB.Model(&models.SupportTicket{}).
		Where("status IN ?", []models.SupportTicketStatus{models.TicketStatusOpen, models.TicketStatusInProgress}).
		Count(&openTickets)
	database.DB.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Count(&activeSubs)
	database.DB.Model(&models.Notification{}).
		Where("status = ?", models.NotificationUnread).
		Count(&unreadNotifs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_orders":         totalOrders,
			"pending_orders":       pendingOrders,
			"in_progress_orders":   inProgressOrders,
			"completed_today":      completedToday,
			"total_customers":      totalCustomers,
			"open_tickets":         openTickets,
			"active_subscriptions": activeSubs,
			"unread_notifications": unreadNotifs,
		},
	})
}

// GetRealtimeStatus reports the sync layer's health: the connection gauge
// plus per-resource cache state and error messages.
func GetRealtimeStatus(c *gin.Context) {
	if syncer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Realtime layer not running"})
		return
	}

	resources := make(map[string]gin.H)
	for _, res := range realtime.AllResources() {
		entry := gin.H{"cached_rows": len(syncer.Store().Get(res))}
		if err := syncer.Store().Err(res); err != nil {
			entry["error"] = err.Error()
		}
		resources[string(res)] = entry
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"live":      syncer.Gauge().IsLive(),
		"clients":   hub.ConnectedUsers(),
		"resources": resources,
	})
}

// GetAllUsers lists accounts for the dashboard's user management screen
func GetAllUsers(c *gin.Context) {
	query := database.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// UpdateUserStatus suspends or reactivates an account
func UpdateUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request struct {
		Status models.UserStatus `json:"status" binding:"required,oneof=active suspended"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	old := user
	user.Status = request.Status
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	publish(realtime.ResourceUsers, realtime.OpUpdate, &old, &user)

	log.Printf("👤 User %d status changed to %s", user.ID, user.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// DeleteUser soft-deletes an account
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	adminID := c.GetUint("user_id")
	if uint(id) == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	publish(realtime.ResourceUsers, realtime.OpDelete, &user, nil)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
