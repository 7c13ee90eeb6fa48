package realtime

import (
	"fmt"

	"gorm.io/gorm"

	"laundry-service-server/models"
)

// resourceTables maps each watched resource onto its database table. The
// laundry_orders resource is the storefront's filtered view of the same
// orders table.
var resourceTables = map[Resource]string{
	ResourceOrders:                     "orders",
	ResourceLaundryOrders:              "orders",
	ResourceUsers:                      "users",
	ResourceSupportTickets:             "support_tickets",
	ResourceSupportMessages:            "support_messages",
	ResourceNotifications:              "notifications",
	ResourceSubscriptionPlans:          "subscription_plans",
	ResourceUserSubscriptions:          "user_subscriptions",
	ResourceSubscriptionBilling:        "subscription_billing",
	ResourceSubscriptionCustomizations: "subscription_customizations",
	ResourceContactMessages:            "contact_messages",
	ResourcePickupDeliveries:           "pickup_deliveries",
}

// GormBackend implements Backend over the shared gorm handle
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend creates a realtime backend over the given connection
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Select loads the full current collection for a resource
func (b *GormBackend) Select(res Resource) ([]Row, error) {
	table, ok := resourceTables[res]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", res)
	}

	var raw []map[string]interface{}
	query := b.db.Table(table).Where("deleted_at IS NULL").Order("created_at DESC")
	if res == ResourceLaundryOrders {
		query = query.Where("status <> ?", models.OrderStatusCancelled)
	}
	if err := query.Find(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = Row(r)
	}
	return rows, nil
}

// Probe runs the lightweight startup health query
func (b *GormBackend) Probe() error {
	var one int
	return b.db.Raw("SELECT 1").Scan(&one).Error
}

// GormNotificationSink persists derived notifications through gorm
type GormNotificationSink struct {
	db *gorm.DB
}

// NewGormNotificationSink creates a sink over the given connection
func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

// CreateNotification inserts one derived notification row
func (s *GormNotificationSink) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}
