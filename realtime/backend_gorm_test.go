package realtime

import (
	"reflect"
	"testing"

	"gorm.io/gorm"

	"laundry-service-server/models"
)

// Select filters every watched table on deleted_at, so each mapped model
// must migrate with that column.
func TestWatchedModelsCarrySoftDelete(t *testing.T) {
	watched := map[Resource]interface{}{
		ResourceOrders:                     models.Order{},
		ResourceLaundryOrders:              models.Order{},
		ResourceUsers:                      models.User{},
		ResourceSupportTickets:             models.SupportTicket{},
		ResourceSupportMessages:            models.SupportMessage{},
		ResourceNotifications:              models.Notification{},
		ResourceSubscriptionPlans:          models.SubscriptionPlan{},
		ResourceUserSubscriptions:          models.UserSubscription{},
		ResourceSubscriptionBilling:        models.SubscriptionBilling{},
		ResourceSubscriptionCustomizations: models.SubscriptionCustomization{},
		ResourceContactMessages:            models.ContactMessage{},
		ResourcePickupDeliveries:           models.PickupDelivery{},
	}

	for _, res := range AllResources() {
		model, ok := watched[res]
		if !ok {
			t.Errorf("resource %q has no model in this test's map", res)
			continue
		}
		if _, ok := resourceTables[res]; !ok {
			t.Errorf("resource %q is missing from resourceTables", res)
			continue
		}

		field, ok := reflect.TypeOf(model).FieldByName("DeletedAt")
		if !ok {
			t.Errorf("model for %q has no DeletedAt field", res)
			continue
		}
		if field.Type != reflect.TypeOf(gorm.DeletedAt{}) {
			t.Errorf("model for %q: DeletedAt is %s, want gorm.DeletedAt", res, field.Type)
		}
	}

	if len(resourceTables) != len(AllResources()) {
		t.Errorf("resourceTables maps %d resources, want %d", len(resourceTables), len(AllResources()))
	}
}

func TestSelectUnknownResource(t *testing.T) {
	b := NewGormBackend(nil)
	if _, err := b.Select(Resource("bogus")); err == nil {
		t.Error("Select should reject an unmapped resource")
	}
}
