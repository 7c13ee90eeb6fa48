package realtime

import (
	"encoding/json"
	"log"

	"laundry-service-server/models"
)

// ToRow converts a model into the raw row shape carried on the feed
func ToRow(v interface{}) Row {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ Failed to encode feed row: %v", err)
		return Row{}
	}

	var row Row
	if err := json.Unmarshal(data, &row); err != nil {
		log.Printf("⚠️ Failed to decode feed row: %v", err)
		return Row{}
	}
	return row
}

// StagePublisher forwards confirmed stage changes from the state machine onto
// the change feed. One order update fans out to both order views, which is
// exactly the burst the debouncer exists to coalesce.
type StagePublisher struct {
	feed *Feed
}

// NewStagePublisher creates a publisher over the feed
func NewStagePublisher(feed *Feed) *StagePublisher {
	return &StagePublisher{feed: feed}
}

// OrderStageChanged implements the state machine's listener hook
func (p *StagePublisher) OrderStageChanged(old, updated *models.Order) {
	oldRow := ToRow(old)
	newRow := ToRow(updated)

	p.feed.Publish(ChangeEvent{Resource: ResourceOrders, Op: OpUpdate, Old: oldRow, New: newRow})
	p.feed.Publish(ChangeEvent{Resource: ResourceLaundryOrders, Op: OpUpdate, Old: oldRow, New: newRow})
}
