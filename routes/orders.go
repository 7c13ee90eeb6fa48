package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
	"laundry-service-server/services"
)

// RegisterOrderRoutes registers customer-facing order endpoints
func RegisterOrderRoutes(rg *gin.RouterGroup) {
	rg.POST("", CreateOrder)
	rg.GET("", GetMyOrders)
	rg.GET("/:id", GetOrderByID)
	rg.GET("/:id/timeline", GetOrderTimeline)
}

// RegisterAdminOrderRoutes registers the admin order management endpoints
func RegisterAdminOrderRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", GetAllOrders)
	rg.GET("/orders/:id", GetOrderForAdmin)
	rg.POST("/orders/:id/approve", ApproveOrder)
	rg.POST("/orders/:id/begin-fulfillment", BeginFulfillment)
	rg.POST("/orders/:id/advance-stage", AdvanceOrderStage)
	rg.POST("/orders/:id/cancel", CancelOrder)
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateOrder books a new laundry order for the authenticated customer
func CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request models.OrderCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		UserID:          userID,
		ServiceType:     request.ServiceType,
		FulfillmentMode: request.FulfillmentMode,
		StageTimestamps: models.StageTimestamps{},
		Status:          models.OrderStatusPending,
		ItemCount:       request.ItemCount,
		TotalAmount:     request.TotalAmount,
		PickupAddress:   request.PickupAddress,
		Notes:           request.Notes,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		log.Printf("❌ Error creating order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	publish(realtime.ResourceOrders, realtime.OpInsert, nil, &order)
	publish(realtime.ResourceLaundryOrders, realtime.OpInsert, nil, &order)

	log.Printf("✅ Order %d created by user %d (%s, %s)", order.ID, userID, order.ServiceType, order.FulfillmentMode)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

// GetMyOrders lists the authenticated customer's orders
func GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	var orders []models.Order
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		log.Printf("❌ Error fetching orders for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// GetOrderByID returns one of the customer's own orders
func GetOrderByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := database.DB.Preload("Photos").Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GetOrderTimeline returns the order's stage sequence annotated with timestamps
func GetOrderTimeline(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	seq, err := services.StageSequence(order.FulfillmentMode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order has an invalid fulfillment mode"})
		return
	}

	type timelineEntry struct {
		Stage     string      `json:"stage"`
		Current   bool        `json:"current"`
		ReachedAt interface{} `json:"reached_at"`
	}

	timeline := make([]timelineEntry, 0, len(seq))
	for _, stage := range seq {
		entry := timelineEntry{Stage: string(stage), Current: order.CurrentStage == string(stage)}
		if ts, ok := order.StageTimestamps[string(stage)]; ok {
			entry.ReachedAt = ts
		}
		timeline = append(timeline, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
		"timeline": timeline,
	})
}

// GetAllOrders lists all orders for the admin dashboard
func GetAllOrders(c *gin.Context) {
	query := database.DB.Preload("User").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if mode := c.Query("fulfillment_mode"); mode != "" {
		query = query.Where("fulfillment_mode = ?", mode)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		log.Printf("❌ Error fetching orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// GetOrderForAdmin returns any order with its relations
func GetOrderForAdmin(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := database.DB.Preload("User").Preload("Photos").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// ApproveOrder confirms a pending order
func ApproveOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := stageMachine.Approve(&order); err != nil {
		respondStageError(c, err)
		return
	}

	log.Printf("✅ Order %d approved", order.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// BeginFulfillment records item receipt and starts the first stage
func BeginFulfillment(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var request struct {
		FulfillmentMode models.FulfillmentMode `json:"fulfillment_mode" binding:"required,oneof=pickup delivery"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := stageMachine.BeginFulfillment(&order, request.FulfillmentMode); err != nil {
		respondStageError(c, err)
		return
	}

	log.Printf("✅ Fulfillment started for order %d (%s)", order.ID, order.FulfillmentMode)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// AdvanceOrderStage moves an order forward one stage
func AdvanceOrderStage(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var request struct {
		TargetStage string `json:"target_stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := stageMachine.AdvanceStage(&order, services.Stage(request.TargetStage)); err != nil {
		respondStageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// CancelOrder cancels an order that has not completed
func CancelOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
		return
	}

	old := order
	order.Status = models.OrderStatusCancelled
	if err := database.DB.Save(&order).Error; err != nil {
		log.Printf("❌ Error cancelling order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	publish(realtime.ResourceOrders, realtime.OpUpdate, &old, &order)
	publish(realtime.ResourceLaundryOrders, realtime.OpUpdate, &old, &order)

	log.Printf("🛑 Order %d cancelled", order.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// respondStageError maps state machine failures onto HTTP responses
func respondStageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fulfillment mode", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid stage transition", "message": err.Error()})
	case errors.Is(err, services.ErrTransitionUnconfirmed):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Transition not confirmed",
			"message": "The update did not land. Please retry or contact an administrator.",
		})
	default:
		log.Printf("❌ Stage operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage operation failed", "message": err.Error()})
	}
}
