package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
	"laundry-service-server/services"
	"laundry-service-server/utils"
)

// RegisterAuthRoutes registers authentication endpoints
func RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", Register)
	rg.POST("/login", Login)
	rg.POST("/refresh", RefreshToken)
	rg.POST("/logout", Logout)
}

// Register creates a new customer account
func Register(c *gin.Context) {
	var request struct {
		FullName    string `json:"full_name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := database.DB.Where("email = ?", request.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Error checking existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("❌ Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		FullName:    request.FullName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		Password:    hashed,
		Role:        models.UserRoleCustomer,
		Status:      models.UserStatusActive,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	publish(realtime.ResourceUsers, realtime.OpInsert, nil, &user)

	jwtService := services.NewJWTService()
	tokens, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		log.Printf("❌ Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	log.Printf("✅ User registered: %s (ID %d)", user.Email, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
		"tokens":  tokens,
	})
}

// Login authenticates a user and returns a token pair
func Login(c *gin.Context) {
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
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(request.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.Status == models.UserStatusSuspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		return
	}

	jwtService := services.NewJWTService()
	tokens, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		log.Printf("❌ Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"tokens":  tokens,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
func RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jwtService := services.NewJWTService()
	tokens, err := jwtService.RefreshAccessToken(request.RefreshToken, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tokens":  tokens,
	})
}

// Logout revokes the presented refresh token
func Logout(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jwtService := services.NewJWTService()
	if err := jwtService.RevokeRefreshToken(request.RefreshToken); err != nil {
		log.Printf("❌ Error revoking refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
