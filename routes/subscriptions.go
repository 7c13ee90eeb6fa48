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

// RegisterSubscriptionRoutes registers customer subscription endpoints
func RegisterSubscriptionRoutes(rg *gin.RouterGroup) {
	rg.GET("/mine", GetMySubscription)
	rg.POST("", Subscribe)
	rg.POST("/cancel", CancelSubscription)
	rg.PUT("/customization", UpsertSubscriptionCustomization)
}

// RegisterAdminSubscriptionRoutes registers admin subscription endpoints
func RegisterAdminSubscriptionRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions", GetAllSubscriptions)
	rg.PATCH("/subscriptions/:id/status", UpdateSubscriptionStatus)
	rg.GET("/billing", GetBillingRecords)
	rg.POST("/billing/:id/outcome", RecordBillingOutcome)
}

// GetSubscriptionPlans lists active plans (public)
func GetSubscriptionPlans(c *gin.Context) {
	var plans []models.SubscriptionPlan
	err := database.DB.Where("is_active = ?", true).
		Order("price_per_month ASC").
		Find(&plans).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "plans": plans})
}

// GetMySubscription returns the customer's current subscription, if any
func GetMySubscription(c *gin.Context) {
	userID := c.GetUint("user_id")

	var sub models.UserSubscription
	err := database.DB.Preload("Plan").
		Where("user_id = ? AND status IN ?", userID, []models.SubscriptionStatus{
			models.SubscriptionStatusActive, models.SubscriptionStatusPaused,
		}).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "subscription": nil})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// Subscribe starts a subscription on the chosen plan
func Subscribe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request struct {
		PlanID uint `json:"plan_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.SubscriptionPlan
	if err := database.DB.Where("id = ? AND is_active = ?", request.PlanID, true).First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	now := time.Now()
	renews := now.AddDate(0, 1, 0)
	sub := models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartedAt: now,
		RenewsAt:  &renews,
	}

	if err := database.DB.Create(&sub).Error; err != nil {
		log.Printf("❌ Error creating subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	publish(realtime.ResourceUserSubscriptions, realtime.OpInsert, nil, &sub)

	log.Printf("✅ User %d subscribed to plan %q", userID, plan.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "subscription": sub})
}

// CancelSubscription cancels the customer's active subscription
func CancelSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")

	var sub models.UserSubscription
	err := database.DB.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
		return
	}

	old := sub
	now := time.Now()
	sub.Status = models.SubscriptionStatusCancelled
	sub.CancelledAt = &now

	if err := database.DB.Save(&sub).Error; err != nil {
		log.Printf("❌ Error cancelling subscription %d: %v", sub.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	publish(realtime.ResourceUserSubscriptions, realtime.OpUpdate, &old, &sub)

	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// UpsertSubscriptionCustomization saves the customer's preferences
func UpsertSubscriptionCustomization(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request struct {
		DetergentPreference string `json:"detergent_preference"`
		FoldingStyle        string `json:"folding_style"`
		Notes               string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sub models.UserSubscription
	err := database.DB.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
		return
	}

	var custom models.SubscriptionCustomization
	err = database.DB.Where("subscription_id = ?", sub.ID).First(&custom).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	custom.SubscriptionID = sub.ID
	custom.DetergentPreference = request.DetergentPreference
	custom.FoldingStyle = request.FoldingStyle
	custom.Notes = request.Notes

	if err := database.DB.Save(&custom).Error; err != nil {
		log.Printf("❌ Error saving customization: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save customization"})
		return
	}

	op := realtime.OpUpdate
	if isNew {
		op = realtime.OpInsert
	}
	publish(realtime.ResourceSubscriptionCustomizations, op, nil, &custom)

	c.JSON(http.StatusOK, gin.H{"success": true, "customization": custom})
}

// GetAllSubscriptions lists subscriptions for the admin dashboard
func GetAllSubscriptions(c *gin.Context) {
	query := database.DB.Preload("User").Preload("Plan").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var subs []models.UserSubscription
	if err := query.Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subscriptions": subs})
}

// UpdateSubscriptionStatus lets admins pause, resume or expire a subscription
func UpdateSubscriptionStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var request struct {
		Status models.SubscriptionStatus `json:"status" binding:"required,oneof=active paused cancelled expired"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sub models.UserSubscription
	if err := database.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	old := sub
	sub.Status = request.Status
	if request.Status == models.SubscriptionStatusCancelled && sub.CancelledAt == nil {
		now := time.Now()
		sub.CancelledAt = &now
	}

	if err := database.DB.Save(&sub).Error; err != nil {
		log.Printf("❌ Error updating subscription %d: %v", sub.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}

	publish(realtime.ResourceUserSubscriptions, realtime.OpUpdate, &old, &sub)

	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// GetBillingRecords lists billing rows for the admin dashboard
func GetBillingRecords(c *gin.Context) {
	query := database.DB.Preload("Subscription").Order("billed_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.SubscriptionBilling
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch billing records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "billing": records})
}

// RecordBillingOutcome records what the payment gateway reported for a cycle
func RecordBillingOutcome(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid billing ID"})
		return
	}

	var request struct {
		Status     models.BillingStatus `json:"status" binding:"required,oneof=paid pending failed"`
		GatewayRef string               `json:"gateway_ref"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.SubscriptionBilling
	if err := database.DB.First(&record, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billing record not found"})
		return
	}

	old := record
	record.Status = request.Status
	if request.GatewayRef != "" {
		record.GatewayRef = request.GatewayRef
	}

	if err := database.DB.Save(&record).Error; err != nil {
		log.Printf("❌ Error updating billing record %d: %v", record.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billing record"})
		return
	}

	publish(realtime.ResourceSubscriptionBilling, realtime.OpUpdate, &old, &record)

	c.JSON(http.StatusOK, gin.H{"success": true, "billing": record})
}
