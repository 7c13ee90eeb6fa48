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
)

// RegisterAdminTripRoutes registers driver trip scheduling endpoints
func RegisterAdminTripRoutes(rg *gin.RouterGroup) {
	rg.GET("/trips", GetAllTrips)
	rg.POST("/trips", ScheduleTrip)
	rg.POST("/trips/:id/complete", CompleteTrip)
}

// GetAllTrips lists scheduled driver trips, soonest first
func GetAllTrips(c *gin.Context) {
	query := database.DB.Preload("Order").Order("scheduled_for ASC")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if c.Query("pending") == "true" {
		query = query.Where("completed_at IS NULL")
	}

	var trips []models.PickupDelivery
	if err := query.Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "trips": trips})
}

// ScheduleTrip books a driver trip for an order
func ScheduleTrip(c *gin.Context) {
	var request struct {
		OrderID      uint                      `json:"order_id" binding:"required"`
		Kind         models.PickupDeliveryKind `json:"kind" binding:"required,oneof=pickup delivery"`
		Address      string                    `json:"address" binding:"required"`
		ScheduledFor time.Time                 `json:"scheduled_for" binding:"required"`
		DriverName   string                    `json:"driver_name"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, request.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	trip := models.PickupDelivery{
		OrderID:      order.ID,
		Kind:         request.Kind,
		Address:      request.Address,
		ScheduledFor: request.ScheduledFor,
		DriverName:   request.DriverName,
	}
	if err := database.DB.Create(&trip).Error; err != nil {
		log.Printf("❌ Error scheduling trip for order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule trip"})
		return
	}

	publish(realtime.ResourcePickupDeliveries, realtime.OpInsert, nil, &trip)

	log.Printf("🚚 Scheduled %s trip for order %d at %s", trip.Kind, order.ID, trip.ScheduledFor.Format(time.RFC3339))
	c.JSON(http.StatusCreated, gin.H{"success": true, "trip": trip})
}

// CompleteTrip marks a trip as done
func CompleteTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip models.PickupDelivery
	if err := database.DB.First(&trip, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if trip.CompletedAt != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "trip": trip})
		return
	}

	old := trip
	now := time.Now()
	trip.CompletedAt = &now
	if err := database.DB.Save(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	publish(realtime.ResourcePickupDeliveries, realtime.OpUpdate, &old, &trip)

	c.JSON(http.StatusOK, gin.H{"success": true, "trip": trip})
}
