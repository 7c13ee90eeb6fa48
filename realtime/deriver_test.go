package realtime

import (
	"testing"

	"laundry-service-server/models"
)

func TestDeriveNotificationsOrderInsert(t *testing.T) {
	tests := []struct {
		name        string
		serviceType string
		wantTitle   string
	}{
		{name: "known service type", serviceType: "dry_cleaning", wantTitle: "New Dry Cleaning Order"},
		{name: "unknown service type", serviceType: "alterations", wantTitle: "New Order"},
		{name: "missing service type", serviceType: "", wantTitle: "New Order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ChangeEvent{
				Resource: ResourceOrders,
				Op:       OpInsert,
				New:      Row{"service_type": tt.serviceType},
			}

			got := DeriveNotifications(ev)
			if len(got) != 1 {
				t.Fatalf("derived %d notifications, want 1", len(got))
			}
			if got[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got[0].Title, tt.wantTitle)
			}
			if got[0].Type != "order" {
				t.Errorf("type = %q, want %q", got[0].Type, "order")
			}
			if got[0].Priority != models.NotificationPriorityMedium {
				t.Errorf("priority = %q, want %q", got[0].Priority, models.NotificationPriorityMedium)
			}
		})
	}
}

func TestDeriveNotificationsSubscriptionStatusFlip(t *testing.T) {
	ev := ChangeEvent{
		Resource: ResourceUserSubscriptions,
		Op:       OpUpdate,
		Old:      Row{"status": "active"},
		New:      Row{"status": "cancelled"},
	}

	got := DeriveNotifications(ev)
	if len(got) != 1 {
		t.Fatalf("derived %d notifications, want 1", len(got))
	}
	if got[0].Type != "subscription" {
		t.Errorf("type = %q, want %q", got[0].Type, "subscription")
	}
	if got[0].Message != "A customer cancelled their subscription." {
		t.Errorf("message = %q", got[0].Message)
	}
}

func TestDeriveNotificationsSubscriptionNoFlip(t *testing.T) {
	// An update that doesn't change status (e.g. renews_at moved) derives
	// nothing.
	ev := ChangeEvent{
		Resource: ResourceUserSubscriptions,
		Op:       OpUpdate,
		Old:      Row{"status": "active"},
		New:      Row{"status": "active"},
	}

	if got := DeriveNotifications(ev); len(got) != 0 {
		t.Errorf("derived %d notifications, want 0", len(got))
	}
}

func TestDeriveNotificationsBillingFailure(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		wantCount int
	}{
		{name: "failed billing", status: "failed", wantCount: 1},
		{name: "paid billing", status: "paid", wantCount: 0},
		{name: "pending billing", status: "pending", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ChangeEvent{
				Resource: ResourceSubscriptionBilling,
				Op:       OpUpdate,
				Old:      Row{"status": "pending"},
				New:      Row{"status": tt.status},
			}

			got := DeriveNotifications(ev)
			if len(got) != tt.wantCount {
				t.Fatalf("derived %d notifications, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 1 && got[0].Priority != models.NotificationPriorityHigh {
				t.Errorf("priority = %q, want %q", got[0].Priority, models.NotificationPriorityHigh)
			}
		})
	}
}

func TestDeriveNotificationsIgnoresUnmatchedEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   ChangeEvent
	}{
		{
			name: "order update",
			ev:   ChangeEvent{Resource: ResourceOrders, Op: OpUpdate, New: Row{"status": "completed"}},
		},
		{
			name: "support ticket update",
			ev:   ChangeEvent{Resource: ResourceSupportTickets, Op: OpUpdate, New: Row{"status": "resolved"}},
		},
		{
			name: "user insert",
			ev:   ChangeEvent{Resource: ResourceUsers, Op: OpInsert, New: Row{"email": "a@b.c"}},
		},
		{
			name: "notification delete",
			ev:   ChangeEvent{Resource: ResourceNotifications, Op: OpDelete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveNotifications(tt.ev); len(got) != 0 {
				t.Errorf("derived %d notifications, want 0", len(got))
			}
		})
	}
}

func TestDeriveNotificationsSupportAndContact(t *testing.T) {
	support := DeriveNotifications(ChangeEvent{
		Resource: ResourceSupportTickets,
		Op:       OpInsert,
		New:      Row{"subject": "Stained shirt came back stained"},
	})
	if len(support) != 1 {
		t.Fatalf("support insert derived %d notifications, want 1", len(support))
	}
	if support[0].Priority != models.NotificationPriorityHigh {
		t.Errorf("support priority = %q, want %q", support[0].Priority, models.NotificationPriorityHigh)
	}

	contact := DeriveNotifications(ChangeEvent{
		Resource: ResourceContactMessages,
		Op:       OpInsert,
		New:      Row{"name": "Dana"},
	})
	if len(contact) != 1 {
		t.Fatalf("contact insert derived %d notifications, want 1", len(contact))
	}
	if contact[0].Message != "Dana sent a message through the contact form." {
		t.Errorf("contact message = %q", contact[0].Message)
	}
}
