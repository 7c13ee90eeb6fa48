package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
)

// RegisterAdminServiceRoutes registers catalog management endpoints
func RegisterAdminServiceRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", GetAllServices)
	rg.POST("/services", CreateService)
	rg.PUT("/services/:id", UpdateService)
	rg.DELETE("/services/:id", DeleteService)
}

// GetServiceCatalog lists active services for the booking frontend (public)
func GetServiceCatalog(c *gin.Context) {
	var services []models.LaundryService
	err := database.DB.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&services).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// GetAllServices lists the full catalog, inactive entries included
func GetAllServices(c *gin.Context) {
	var services []models.LaundryService
	if err := database.DB.Order("sort_order ASC, name ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// CreateService adds a catalog entry
func CreateService(c *gin.Context) {
	var service models.LaundryService
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if service.Name == "" || service.ServiceType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and service_type are required"})
		return
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Error creating service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "service": service})
}

// UpdateService edits a catalog entry
func UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.LaundryService
	if err := database.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var updates models.LaundryService
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates.ID = service.ID
	if err := database.DB.Model(&service).Updates(map[string]interface{}{
		"name":         updates.Name,
		"service_type": updates.ServiceType,
		"description":  updates.Description,
		"base_price":   updates.BasePrice,
		"price_unit":   updates.PriceUnit,
		"turnaround_h": updates.TurnaroundH,
		"is_active":    updates.IsActive,
		"sort_order":   updates.SortOrder,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "service": service})
}

// DeleteService soft-deletes a catalog entry
func DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := database.DB.Delete(&models.LaundryService{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted"})
}
