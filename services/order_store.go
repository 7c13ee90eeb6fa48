package services

import (
	"fmt"

	"gorm.io/gorm"

	"laundry-service-server/database"
	"laundry-service-server/models"
)

// GormOrderStore is the production OrderStore backed by the shared gorm handle
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore creates an order store over the global database connection
func NewGormOrderStore() *GormOrderStore {
	return &GormOrderStore{db: database.GetDB()}
}

// GetOrder loads the persisted state of an order
func (s *GormOrderStore) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrder applies partial fields to an order row
func (s *GormOrderStore) UpdateOrder(id uint, fields map[string]interface{}) error {
	result := s.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	// Zero rows affected is not an error here; the state machine's re-read
	// verification is what catches silently-filtered updates.
	return nil
}
