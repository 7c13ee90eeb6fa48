package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"laundry-service-server/models"
)

// Stage is a key into an order's fulfillment stage sequence
type Stage string

const (
	StageSorting          Stage = "sorting"
	StageStainRemoving    Stage = "stain_removing"
	StageWashing          Stage = "washing"
	StageIroning          Stage = "ironing"
	StagePacking          Stage = "packing"
	StageReadyForDelivery Stage = "ready_for_delivery"
	StageOutForDelivery   Stage = "out_for_delivery"
	StageDelivered        Stage = "delivered"
	StageReadyForPickup   Stage = "ready_for_pickup"
	StagePickedUp         Stage = "picked_up"

	// StampDroppedOff is the receipt-event timestamp key recorded when items
	// arrive at the facility. It is not a member of either stage sequence.
	StampDroppedOff Stage = "dropped_off"
)

var (
	// ErrInvalidMode is returned for a fulfillment mode outside the closed enum
	ErrInvalidMode = errors.New("invalid fulfillment mode")

	// ErrInvalidTransition is returned when a requested stage or status change
	// is not the immediate next step
	ErrInvalidTransition = errors.New("invalid stage transition")

	// ErrTransitionUnconfirmed is returned when a write reported no error but
	// the re-read shows the order was not actually updated (e.g. the row was
	// silently filtered by an access rule)
	ErrTransitionUnconfirmed = errors.New("stage transition not confirmed by re-read")
)

var (
	deliverySequence = []Stage{
		StageSorting, StageStainRemoving, StageWashing, StageIroning, StagePacking,
		StageReadyForDelivery, StageOutForDelivery, StageDelivered,
	}
	pickupSequence = []Stage{
		StageSorting, StageStainRemoving, StageWashing, StageIroning, StagePacking,
		StageReadyForPickup, StagePickedUp,
	}
)

// StageSequence returns the ordered stage keys for a fulfillment mode
func StageSequence(mode models.FulfillmentMode) ([]Stage, error) {
	switch mode {
	case models.FulfillmentDelivery:
		return deliverySequence, nil
	case models.FulfillmentPickup:
		return pickupSequence, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// NextStage returns the stage following current, or "" when current is
// terminal or not a member of the sequence
func NextStage(current Stage, mode models.FulfillmentMode) (Stage, error) {
	seq, err := StageSequence(mode)
	if err != nil {
		return "", err
	}
	for i, s := range seq {
		if s == current {
			if i+1 < len(seq) {
				return seq[i+1], nil
			}
			return "", nil
		}
	}
	return "", nil
}

// PreviousStage returns the stage preceding current, or "" when current is
// first or not a member of the sequence
func PreviousStage(current Stage, mode models.FulfillmentMode) (Stage, error) {
	seq, err := StageSequence(mode)
	if err != nil {
		return "", err
	}
	for i, s := range seq {
		if s == current {
			if i > 0 {
				return seq[i-1], nil
			}
			return "", nil
		}
	}
	return "", nil
}

// TerminalStage returns the last stage of the mode's sequence
func TerminalStage(mode models.FulfillmentMode) (Stage, error) {
	seq, err := StageSequence(mode)
	if err != nil {
		return "", err
	}
	return seq[len(seq)-1], nil
}

// OrderStore abstracts order persistence so the machine can be tested against
// an in-memory store and can re-read after every write.
type OrderStore interface {
	// GetOrder loads the current persisted state of an order
	GetOrder(id uint) (*models.Order, error)
	// UpdateOrder applies partial fields to an order row
	UpdateOrder(id uint, fields map[string]interface{}) error
}

// StageListener is told about confirmed stage changes so the realtime layer
// can fan them out. Implementations must not block.
type StageListener interface {
	OrderStageChanged(old, updated *models.Order)
}

// StageMachine validates and executes order stage transitions
type StageMachine struct {
	store    OrderStore
	listener StageListener
	now      func() time.Time
}

// NewStageMachine creates a stage machine over the given store.
// listener may be nil.
func NewStageMachine(store OrderStore, listener StageListener) *StageMachine {
	return &StageMachine{
		store:    store,
		listener: listener,
		now:      time.Now,
	}
}

// Approve moves an order from pending to confirmed without touching stages
func (m *StageMachine) Approve(order *models.Order) error {
	if order.Status != models.OrderStatusPending {
		return fmt.Errorf("%w: cannot approve order in status %q", ErrInvalidTransition, order.Status)
	}

	now := m.now()
	fields := map[string]interface{}{
		"status":     models.OrderStatusConfirmed,
		"updated_at": now,
	}
	if err := m.store.UpdateOrder(order.ID, fields); err != nil {
		return fmt.Errorf("failed to approve order %d: %w", order.ID, err)
	}

	fresh, err := m.reRead(order.ID)
	if err != nil {
		return err
	}
	if fresh.Status != models.OrderStatusConfirmed {
		return fmt.Errorf("%w: order %d still in status %q", ErrTransitionUnconfirmed, order.ID, fresh.Status)
	}

	m.notify(order, fresh)
	*order = *fresh
	return nil
}

// BeginFulfillment marks the items as received and starts the first stage.
// Only valid when the order is confirmed and no stage has been set. The
// receipt event and the sorting stage are stamped with the same instant,
// since the hand-off and the start of processing are a single admin action.
func (m *StageMachine) BeginFulfillment(order *models.Order, mode models.FulfillmentMode) error {
	seq, err := StageSequence(mode)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusConfirmed {
		return fmt.Errorf("%w: cannot begin fulfillment for order in status %q", ErrInvalidTransition, order.Status)
	}
	if order.CurrentStage != "" {
		return fmt.Errorf("%w: order %d already in stage %q", ErrInvalidTransition, order.ID, order.CurrentStage)
	}

	now := m.now()
	first := seq[0]
	stamps := order.StageTimestamps.Clone()
	stamps[string(StampDroppedOff)] = now
	stamps[string(first)] = now

	fields := map[string]interface{}{
		"fulfillment_mode": mode,
		"current_stage":    string(first),
		"stage_timestamps": stamps,
		"status":           models.OrderStatusInProgress,
		"updated_at":       now,
	}
	if err := m.store.UpdateOrder(order.ID, fields); err != nil {
		return fmt.Errorf("failed to begin fulfillment for order %d: %w", order.ID, err)
	}

	fresh, err := m.reRead(order.ID)
	if err != nil {
		return err
	}
	if fresh.CurrentStage != string(first) {
		return fmt.Errorf("%w: order %d stage is %q, expected %q", ErrTransitionUnconfirmed, order.ID, fresh.CurrentStage, first)
	}

	m.notify(order, fresh)
	*order = *fresh
	return nil
}

// AdvanceStage moves an order forward exactly one stage. Re-advancing to the
// current stage is a no-op success so retried network calls never
// double-append timestamps.
func (m *StageMachine) AdvanceStage(order *models.Order, target Stage) error {
	seq, err := StageSequence(order.FulfillmentMode)
	if err != nil {
		return err
	}

	if order.CurrentStage != "" && Stage(order.CurrentStage) == target {
		return nil
	}

	next, err := NextStage(Stage(order.CurrentStage), order.FulfillmentMode)
	if err != nil {
		return err
	}
	if next == "" || next != target {
		return fmt.Errorf("%w: order %d cannot move from %q to %q", ErrInvalidTransition, order.ID, order.CurrentStage, target)
	}

	now := m.now()
	stamps := order.StageTimestamps.Clone()
	stamps[string(target)] = now

	fields := map[string]interface{}{
		"current_stage":    string(target),
		"stage_timestamps": stamps,
		"updated_at":       now,
	}
	if target == seq[len(seq)-1] {
		fields["status"] = models.OrderStatusCompleted
	}

	if err := m.store.UpdateOrder(order.ID, fields); err != nil {
		return fmt.Errorf("failed to advance order %d to %q: %w", order.ID, target, err)
	}

	// Never assume write success: an access rule can swallow the update
	// without raising an error, so confirm against the persisted state.
	fresh, err := m.reRead(order.ID)
	if err != nil {
		return err
	}
	if fresh.CurrentStage != string(target) {
		return fmt.Errorf("%w: order %d stage is %q, expected %q", ErrTransitionUnconfirmed, order.ID, fresh.CurrentStage, target)
	}

	m.notify(order, fresh)
	*order = *fresh
	return nil
}

func (m *StageMachine) reRead(orderID uint) (*models.Order, error) {
	fresh, err := m.store.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: re-read of order %d failed: %v", ErrTransitionUnconfirmed, orderID, err)
	}
	return fresh, nil
}

func (m *StageMachine) notify(old, updated *models.Order) {
	if m.listener == nil {
		return
	}
	oldCopy := *old
	updatedCopy := *updated
	m.listener.OrderStageChanged(&oldCopy, &updatedCopy)
	log.Printf("📦 Order %d moved to stage %q (status %s)", updated.ID, updated.CurrentStage, updated.Status)
}
