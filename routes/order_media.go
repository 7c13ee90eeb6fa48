package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterOrderMediaRoutes adds the item-photo upload endpoint. Customers
// attach photos of stains or delicate items so staff know what to expect.
func RegisterOrderMediaRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/photos", UploadOrderPhoto)
}

// UploadOrderPhoto uploads an item photo to Cloudinary and links it to an order
func UploadOrderPhoto(c *gin.Context) {
	userID := c.GetUint("user_id")

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := database.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil || header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo must be a jpg, png or webp under 5MB"})
		return
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo storage not configured"})
		return
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo storage initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read photo"})
		return
	}
	defer file.Close()

	ow := true
	uf := true
	folder := "orders/" + strconv.FormatUint(orderID, 10)
	log.Printf("📸 Uploading order photo %s to folder: %s", header.Filename, folder)

	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &ow,
		UniqueFilename: &uf,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Order photo upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Photo upload failed"})
		return
	}

	photo := models.OrderPhoto{
		OrderID:  uint(orderID),
		URL:      up.SecureURL,
		PublicID: up.PublicID,
		Caption:  c.PostForm("caption"),
	}
	if err := database.DB.Create(&photo).Error; err != nil {
		log.Printf("❌ Failed to save order photo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	log.Printf("✅ Order photo uploaded: %s", up.SecureURL)
	c.JSON(http.StatusCreated, gin.H{"success": true, "photo": photo})
}
