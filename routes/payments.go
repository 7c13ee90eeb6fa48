package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
)

// RegisterAdminPaymentRoutes registers per-order payment endpoints
func RegisterAdminPaymentRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments", GetAllPayments)
	rg.POST("/orders/:id/payments", RecordOrderPayment)
}

// GetAllPayments lists payment rows for the dashboard
func GetAllPayments(c *gin.Context) {
	query := database.DB.Preload("Order").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

// RecordOrderPayment mirrors a gateway outcome against an order
func RecordOrderPayment(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var request struct {
		Amount     float64              `json:"amount" binding:"required"`
		Method     string               `json:"method" binding:"required,oneof=card cash wallet"`
		Status     models.PaymentStatus `json:"status" binding:"required,oneof=pending paid failed refunded"`
		GatewayRef string               `json:"gateway_ref"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	payment := models.Payment{
		OrderID:    order.ID,
		Amount:     request.Amount,
		Method:     request.Method,
		Status:     request.Status,
		GatewayRef: request.GatewayRef,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("❌ Error recording payment for order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	log.Printf("💳 Payment of %.2f (%s) recorded for order %d", payment.Amount, payment.Status, order.ID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}
