package jobs

import (
	"fmt"
	"log"
	"time"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/realtime"
)

// StaleOrderJob watches for in-progress orders that haven't moved stage in too
// long and raises an admin notification so someone chases them up.
type StaleOrderJob struct {
	feed      *realtime.Feed
	threshold time.Duration
	flagged   map[uint]bool
	stopChan  chan bool
}

// NewStaleOrderJob creates a new stale order job
func NewStaleOrderJob(feed *realtime.Feed, threshold time.Duration) *StaleOrderJob {
	return &StaleOrderJob{
		feed:      feed,
		threshold: threshold,
		flagged:   make(map[uint]bool),
		stopChan:  make(chan bool),
	}
}

// Start begins the stale order job
func (j *StaleOrderJob) Start() {
	go j.run()
	log.Println("🚀 Stale order job started")
}

// Stop stops the stale order job
func (j *StaleOrderJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Stale order job stopped")
}

func (j *StaleOrderJob) run() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.checkStaleOrders()
		case <-j.stopChan:
			return
		}
	}
}

// checkStaleOrders flags orders that have sat in the same stage past the threshold
func (j *StaleOrderJob) checkStaleOrders() {
	cutoff := time.Now().Add(-j.threshold)

	var staleOrders []models.Order
	err := database.DB.Where("status = ? AND updated_at <= ?",
		models.OrderStatusInProgress, cutoff).Find(&staleOrders).Error
	if err != nil {
		log.Printf("❌ Error checking stale orders: %v", err)
		return
	}

	for _, order := range staleOrders {
		if j.flagged[order.ID] {
			continue
		}
		j.flagOrder(order)
	}
}

// flagOrder creates an admin notification for a stuck order, once per order
func (j *StaleOrderJob) flagOrder(order models.Order) {
	notification := models.Notification{
		Title:     "Order Stuck",
		Message:   fmt.Sprintf("Order #%d has been in stage %q for over %s.", order.ID, order.CurrentStage, j.threshold),
		Type:      "order",
		Priority:  models.NotificationPriorityHigh,
		ActionURL: fmt.Sprintf("/admin/orders/%d", order.ID),
		Status:    models.NotificationUnread,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("❌ Failed to create stale order notification for order %d: %v", order.ID, err)
		return
	}

	j.flagged[order.ID] = true
	log.Printf("⏰ Flagged stale order %d (stage %q since %s)", order.ID, order.CurrentStage, order.UpdatedAt.Format(time.RFC3339))

	if j.feed != nil {
		j.feed.Publish(realtime.ChangeEvent{
			Resource: realtime.ResourceNotifications,
			Op:       realtime.OpInsert,
			New:      realtime.ToRow(&notification),
		})
	}
}
