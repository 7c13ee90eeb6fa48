package realtime

import (
	"fmt"

	"laundry-service-server/models"
)

// Rule maps a change pattern to a notification template. Rules are evaluated
// independently; more than one may fire for a single event.
type Rule struct {
	Resource Resource
	Op       Operation
	When     func(ev ChangeEvent) bool
	Build    func(ev ChangeEvent) models.Notification
}

var serviceTypeTitles = map[string]string{
	"wash_and_fold": "New Wash & Fold Order",
	"dry_cleaning":  "New Dry Cleaning Order",
	"ironing":       "New Ironing Order",
	"bedding":       "New Bedding Order",
}

var subscriptionStatusMessages = map[string]string{
	"active":    "A subscription was activated.",
	"paused":    "A customer paused their subscription.",
	"cancelled": "A customer cancelled their subscription.",
	"expired":   "A subscription expired.",
}

func orderTitle(ev ChangeEvent) string {
	if title, ok := serviceTypeTitles[ev.New.String("service_type")]; ok {
		return title
	}
	return "New Order"
}

func statusChanged(ev ChangeEvent) bool {
	return ev.Old.String("status") != ev.New.String("status")
}

var rules = []Rule{
	{
		Resource: ResourceOrders,
		Op:       OpInsert,
		When:     func(ChangeEvent) bool { return true },
		Build: func(ev ChangeEvent) models.Notification {
			return models.Notification{
				Title:     orderTitle(ev),
				Message:   "A new booking is waiting for approval.",
				Type:      "order",
				Priority:  models.NotificationPriorityMedium,
				ActionURL: "/admin/orders",
			}
		},
	},
	{
		Resource: ResourceSupportTickets,
		Op:       OpInsert,
		When:     func(ChangeEvent) bool { return true },
		Build: func(ev ChangeEvent) models.Notification {
			return models.Notification{
				Title:     "New Support Ticket",
				Message:   fmt.Sprintf("A customer opened a ticket: %s", ev.New.String("subject")),
				Type:      "support",
				Priority:  models.NotificationPriorityHigh,
				ActionURL: "/admin/support",
			}
		},
	},
	{
		Resource: ResourceContactMessages,
		Op:       OpInsert,
		When:     func(ChangeEvent) bool { return true },
		Build: func(ev ChangeEvent) models.Notification {
			return models.Notification{
				Title:     "New Contact Message",
				Message:   fmt.Sprintf("%s sent a message through the contact form.", ev.New.String("name")),
				Type:      "contact",
				Priority:  models.NotificationPriorityMedium,
				ActionURL: "/admin/contact",
			}
		},
	},
	{
		Resource: ResourceUserSubscriptions,
		Op:       OpUpdate,
		When:     statusChanged,
		Build: func(ev ChangeEvent) models.Notification {
			status := ev.New.String("status")
			message, ok := subscriptionStatusMessages[status]
			if !ok {
				message = fmt.Sprintf("A subscription changed status to %q.", status)
			}
			return models.Notification{
				Title:     "Subscription Update",
				Message:   message,
				Type:      "subscription",
				Priority:  models.NotificationPriorityMedium,
				ActionURL: "/admin/subscriptions",
			}
		},
	},
	{
		Resource: ResourceSubscriptionBilling,
		Op:       OpUpdate,
		When: func(ev ChangeEvent) bool {
			return ev.New.String("status") == string(models.BillingStatusFailed)
		},
		Build: func(ev ChangeEvent) models.Notification {
			return models.Notification{
				Title:     "Subscription Payment Failed",
				Message:   "A subscription billing attempt failed and needs attention.",
				Type:      "billing",
				Priority:  models.NotificationPriorityHigh,
				ActionURL: "/admin/billing",
			}
		},
	},
}

// DeriveNotifications evaluates the rule table against one change event and
// returns the notifications it produces. Pure: no persistence, no transport.
func DeriveNotifications(ev ChangeEvent) []models.Notification {
	var out []models.Notification
	for _, rule := range rules {
		if rule.Resource != ev.Resource || rule.Op != ev.Op {
			continue
		}
		if rule.When != nil && !rule.When(ev) {
			continue
		}
		out = append(out, rule.Build(ev))
	}
	return out
}
