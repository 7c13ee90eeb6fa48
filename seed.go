package main

import (
	"log"

	"laundry-service-server/database"
	"laundry-service-server/models"
)

// seedServiceCatalog inserts the default laundry services when the catalog is
// empty, so a fresh deployment has something to show on the booking page.
func seedServiceCatalog() {
	var count int64
	if err := database.DB.Model(&models.LaundryService{}).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check service catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	services := []models.LaundryService{
		{
			Name:        "Wash & Fold",
			ServiceType: "wash_and_fold",
			Description: "Everyday laundry washed, dried and neatly folded.",
			BasePrice:   4.50,
			PriceUnit:   "per_kg",
			TurnaroundH: 48,
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:        "Dry Cleaning",
			ServiceType: "dry_cleaning",
			Description: "Professional dry cleaning for suits, dresses and delicates.",
			BasePrice:   9.00,
			PriceUnit:   "per_item",
			TurnaroundH: 72,
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Name:        "Ironing",
			ServiceType: "ironing",
			Description: "Pressed and ready to wear, on hangers.",
			BasePrice:   2.50,
			PriceUnit:   "per_item",
			TurnaroundH: 24,
			SortOrder:   3,
			IsActive:    true,
		},
		{
			Name:        "Bedding & Linen",
			ServiceType: "bedding",
			Description: "Duvets, sheets and towels washed at high temperature.",
			BasePrice:   12.00,
			PriceUnit:   "per_item",
			TurnaroundH: 72,
			SortOrder:   4,
			IsActive:    true,
		},
	}

	if err := database.DB.Create(&services).Error; err != nil {
		log.Printf("❌ Failed to seed service catalog: %v", err)
		return
	}
	log.Printf("🌱 Seeded %d laundry services", len(services))
}
