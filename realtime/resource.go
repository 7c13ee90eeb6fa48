package realtime

import "time"

// Resource identifies a synchronized collection. The debouncer and cache are
// keyed by this enum rather than free-form strings so a typo cannot silently
// create a new timer bucket.
type Resource string

const (
	ResourceOrders                     Resource = "orders"
	ResourceLaundryOrders              Resource = "laundry_orders"
	ResourceUsers                      Resource = "users"
	ResourceSupportTickets             Resource = "support_tickets"
	ResourceSupportMessages            Resource = "support_messages"
	ResourceNotifications              Resource = "notifications"
	ResourceSubscriptionPlans          Resource = "subscription_plans"
	ResourceUserSubscriptions          Resource = "user_subscriptions"
	ResourceSubscriptionBilling        Resource = "subscription_billing"
	ResourceSubscriptionCustomizations Resource = "subscription_customizations"
	ResourceContactMessages            Resource = "contact_messages"
	ResourcePickupDeliveries           Resource = "pickup_deliveries"
)

// AllResources returns every resource the sync layer watches
func AllResources() []Resource {
	return []Resource{
		ResourceOrders,
		ResourceLaundryOrders,
		ResourceUsers,
		ResourceSupportTickets,
		ResourceSupportMessages,
		ResourceNotifications,
		ResourceSubscriptionPlans,
		ResourceUserSubscriptions,
		ResourceSubscriptionBilling,
		ResourceSubscriptionCustomizations,
		ResourceContactMessages,
		ResourcePickupDeliveries,
	}
}

// Operation is the kind of change carried by a feed event
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Row is a raw row payload as carried on the change feed
type Row map[string]interface{}

// String reads a string field from the row, "" when absent
func (r Row) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// ChangeEvent is one change-feed entry. New is set for insert/update,
// Old only for update.
type ChangeEvent struct {
	Resource  Resource  `json:"resource"`
	Op        Operation `json:"op"`
	New       Row       `json:"new,omitempty"`
	Old       Row       `json:"old,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
