package services

import (
	"errors"
	"testing"
	"time"

	"laundry-service-server/models"
)

// memoryOrderStore is an in-memory OrderStore for exercising the machine
// without a database.
type memoryOrderStore struct {
	orders map[uint]*models.Order
	// blocked simulates a write that is silently filtered: UpdateOrder
	// returns nil but nothing changes.
	blocked bool
	updates int
}

func newMemoryOrderStore(orders ...*models.Order) *memoryOrderStore {
	s := &memoryOrderStore{orders: make(map[uint]*models.Order)}
	for _, o := range orders {
		copied := *o
		s.orders[o.ID] = &copied
	}
	return s
}

func (s *memoryOrderStore) GetOrder(id uint) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	copied := *o
	return &copied, nil
}

func (s *memoryOrderStore) UpdateOrder(id uint, fields map[string]interface{}) error {
	s.updates++
	if s.blocked {
		return nil
	}
	o, ok := s.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	for key, value := range fields {
		switch key {
		case "status":
			o.Status = value.(models.OrderStatus)
		case "current_stage":
			o.CurrentStage = value.(string)
		case "stage_timestamps":
			o.StageTimestamps = value.(models.StageTimestamps)
		case "fulfillment_mode":
			o.FulfillmentMode = value.(models.FulfillmentMode)
		case "updated_at":
			o.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

type recordingListener struct {
	changes int
}

func (l *recordingListener) OrderStageChanged(old, updated *models.Order) {
	l.changes++
}

func TestStageSequence(t *testing.T) {
	tests := []struct {
		name     string
		mode     models.FulfillmentMode
		wantLen  int
		wantLast Stage
		wantErr  error
	}{
		{name: "delivery", mode: models.FulfillmentDelivery, wantLen: 8, wantLast: StageDelivered},
		{name: "pickup", mode: models.FulfillmentPickup, wantLen: 7, wantLast: StagePickedUp},
		{name: "unknown mode", mode: "courier", wantErr: ErrInvalidMode},
		{name: "empty mode", mode: "", wantErr: ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := StageSequence(tt.mode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("StageSequence(%q) error = %v, want %v", tt.mode, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("StageSequence(%q) unexpected error: %v", tt.mode, err)
			}
			if len(seq) != tt.wantLen {
				t.Errorf("StageSequence(%q) length = %d, want %d", tt.mode, len(seq), tt.wantLen)
			}
			if seq[0] != StageSorting {
				t.Errorf("StageSequence(%q) starts with %q, want %q", tt.mode, seq[0], StageSorting)
			}
			if seq[len(seq)-1] != tt.wantLast {
				t.Errorf("StageSequence(%q) ends with %q, want %q", tt.mode, seq[len(seq)-1], tt.wantLast)
			}
		})
	}
}

func TestNextPreviousStageSymmetry(t *testing.T) {
	for _, mode := range []models.FulfillmentMode{models.FulfillmentDelivery, models.FulfillmentPickup} {
		seq, err := StageSequence(mode)
		if err != nil {
			t.Fatalf("StageSequence(%q): %v", mode, err)
		}

		for i, stage := range seq {
			next, err := NextStage(stage, mode)
			if err != nil {
				t.Fatalf("NextStage(%q, %q): %v", stage, mode, err)
			}
			if i == len(seq)-1 {
				if next != "" {
					t.Errorf("NextStage(%q, %q) = %q, want empty for terminal stage", stage, mode, next)
				}
			} else if next != seq[i+1] {
				t.Errorf("NextStage(%q, %q) = %q, want %q", stage, mode, next, seq[i+1])
			}

			prev, err := PreviousStage(stage, mode)
			if err != nil {
				t.Fatalf("PreviousStage(%q, %q): %v", stage, mode, err)
			}
			if i == 0 {
				if prev != "" {
					t.Errorf("PreviousStage(%q, %q) = %q, want empty for first stage", stage, mode, prev)
				}
			} else if prev != seq[i-1] {
				t.Errorf("PreviousStage(%q, %q) = %q, want %q", stage, mode, prev, seq[i-1])
			}
		}
	}
}

func TestNextStageUnknownStage(t *testing.T) {
	next, err := NextStage("folding", models.FulfillmentDelivery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != "" {
		t.Errorf("NextStage for unknown stage = %q, want empty", next)
	}
}

func TestApprove(t *testing.T) {
	store := newMemoryOrderStore(&models.Order{ID: 1, Status: models.OrderStatusPending})
	listener := &recordingListener{}
	m := NewStageMachine(store, listener)

	order, _ := store.GetOrder(1)
	if err := m.Approve(order); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if order.Status != models.OrderStatusConfirmed {
		t.Errorf("order status = %q, want %q", order.Status, models.OrderStatusConfirmed)
	}
	if listener.changes != 1 {
		t.Errorf("listener notified %d times, want 1", listener.changes)
	}

	// Re-approving a confirmed order is not a valid transition.
	if err := m.Approve(order); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Approve on confirmed order error = %v, want ErrInvalidTransition", err)
	}
}

func TestBeginFulfillment(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	store := newMemoryOrderStore(&models.Order{ID: 7, Status: models.OrderStatusConfirmed})
	m := NewStageMachine(store, nil)
	m.now = func() time.Time { return fixed }

	order, _ := store.GetOrder(7)
	if err := m.BeginFulfillment(order, models.FulfillmentPickup); err != nil {
		t.Fatalf("BeginFulfillment: %v", err)
	}

	if order.Status != models.OrderStatusInProgress {
		t.Errorf("order status = %q, want %q", order.Status, models.OrderStatusInProgress)
	}
	if order.CurrentStage != string(StageSorting) {
		t.Errorf("current stage = %q, want %q", order.CurrentStage, StageSorting)
	}
	if order.FulfillmentMode != models.FulfillmentPickup {
		t.Errorf("fulfillment mode = %q, want %q", order.FulfillmentMode, models.FulfillmentPickup)
	}

	// The receipt event and the first stage carry the same instant.
	dropped, ok := order.StageTimestamps[string(StampDroppedOff)]
	if !ok {
		t.Fatal("dropped_off timestamp missing")
	}
	sorting, ok := order.StageTimestamps[string(StageSorting)]
	if !ok {
		t.Fatal("sorting timestamp missing")
	}
	if !dropped.Equal(fixed) || !sorting.Equal(fixed) {
		t.Errorf("timestamps = %v / %v, want both %v", dropped, sorting, fixed)
	}
}

func TestBeginFulfillmentRejections(t *testing.T) {
	tests := []struct {
		name    string
		order   models.Order
		mode    models.FulfillmentMode
		wantErr error
	}{
		{
			name:    "pending order",
			order:   models.Order{ID: 1, Status: models.OrderStatusPending},
			mode:    models.FulfillmentDelivery,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "stage already set",
			order:   models.Order{ID: 2, Status: models.OrderStatusConfirmed, CurrentStage: string(StageWashing)},
			mode:    models.FulfillmentDelivery,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "bad mode",
			order:   models.Order{ID: 3, Status: models.OrderStatusConfirmed},
			mode:    "drone",
			wantErr: ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryOrderStore(&tt.order)
			m := NewStageMachine(store, nil)

			order := tt.order
			if err := m.BeginFulfillment(&order, tt.mode); !errors.Is(err, tt.wantErr) {
				t.Errorf("BeginFulfillment error = %v, want %v", err, tt.wantErr)
			}
			if store.updates != 0 {
				t.Errorf("store saw %d updates, want 0", store.updates)
			}
		})
	}
}

func TestAdvanceStageForwardOnly(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  Stage
		wantErr error
	}{
		{name: "next stage", current: string(StageSorting), target: StageStainRemoving},
		{name: "skip ahead", current: string(StageSorting), target: StageWashing, wantErr: ErrInvalidTransition},
		{name: "backwards", current: string(StageWashing), target: StageStainRemoving, wantErr: ErrInvalidTransition},
		{name: "cross-mode stage", current: string(StagePacking), target: StageReadyForPickup, wantErr: ErrInvalidTransition},
		{name: "unknown target", current: string(StageSorting), target: "folding", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryOrderStore(&models.Order{
				ID:              5,
				Status:          models.OrderStatusInProgress,
				FulfillmentMode: models.FulfillmentDelivery,
				CurrentStage:    tt.current,
				StageTimestamps: models.StageTimestamps{},
			})
			m := NewStageMachine(store, nil)

			order, _ := store.GetOrder(5)
			err := m.AdvanceStage(order, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AdvanceStage error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AdvanceStage: %v", err)
			}
			if order.CurrentStage != string(tt.target) {
				t.Errorf("current stage = %q, want %q", order.CurrentStage, tt.target)
			}
			if _, ok := order.StageTimestamps[string(tt.target)]; !ok {
				t.Errorf("no timestamp recorded for %q", tt.target)
			}
		})
	}
}

func TestAdvanceStageIdempotentRetry(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	store := newMemoryOrderStore(&models.Order{
		ID:              9,
		Status:          models.OrderStatusInProgress,
		FulfillmentMode: models.FulfillmentDelivery,
		CurrentStage:    string(StageWashing),
		StageTimestamps: models.StageTimestamps{string(StageWashing): stamp},
	})
	listener := &recordingListener{}
	m := NewStageMachine(store, listener)

	// A retried call targeting the stage we are already in succeeds without
	// touching the store or moving the timestamp.
	order, _ := store.GetOrder(9)
	if err := m.AdvanceStage(order, StageWashing); err != nil {
		t.Fatalf("re-advance to current stage: %v", err)
	}
	if store.updates != 0 {
		t.Errorf("store saw %d updates, want 0", store.updates)
	}
	if listener.changes != 0 {
		t.Errorf("listener notified %d times, want 0", listener.changes)
	}
	if got := order.StageTimestamps[string(StageWashing)]; !got.Equal(stamp) {
		t.Errorf("washing timestamp moved to %v, want %v", got, stamp)
	}
}

func TestAdvanceStageTerminalCompletesOrder(t *testing.T) {
	store := newMemoryOrderStore(&models.Order{
		ID:              3,
		Status:          models.OrderStatusInProgress,
		FulfillmentMode: models.FulfillmentPickup,
		CurrentStage:    string(StageReadyForPickup),
		StageTimestamps: models.StageTimestamps{},
	})
	m := NewStageMachine(store, nil)

	order, _ := store.GetOrder(3)
	if err := m.AdvanceStage(order, StagePickedUp); err != nil {
		t.Fatalf("AdvanceStage to terminal: %v", err)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("order status = %q, want %q", order.Status, models.OrderStatusCompleted)
	}

	// Nothing follows the terminal stage.
	if err := m.AdvanceStage(order, "done"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("advance past terminal error = %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceStageUnconfirmedWrite(t *testing.T) {
	store := newMemoryOrderStore(&models.Order{
		ID:              4,
		Status:          models.OrderStatusInProgress,
		FulfillmentMode: models.FulfillmentDelivery,
		CurrentStage:    string(StageSorting),
		StageTimestamps: models.StageTimestamps{},
	})
	store.blocked = true
	listener := &recordingListener{}
	m := NewStageMachine(store, listener)

	order, _ := store.GetOrder(4)
	err := m.AdvanceStage(order, StageStainRemoving)
	if !errors.Is(err, ErrTransitionUnconfirmed) {
		t.Fatalf("AdvanceStage error = %v, want ErrTransitionUnconfirmed", err)
	}
	if listener.changes != 0 {
		t.Errorf("listener notified %d times, want 0 for unconfirmed write", listener.changes)
	}
	// The caller's copy keeps the old stage for further inspection.
	if order.CurrentStage != string(StageSorting) {
		t.Errorf("current stage = %q, want unchanged %q", order.CurrentStage, StageSorting)
	}
}

func TestFullDeliveryWalk(t *testing.T) {
	store := newMemoryOrderStore(&models.Order{ID: 11, Status: models.OrderStatusPending})
	m := NewStageMachine(store, nil)

	order, _ := store.GetOrder(11)
	if err := m.Approve(order); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := m.BeginFulfillment(order, models.FulfillmentDelivery); err != nil {
		t.Fatalf("BeginFulfillment: %v", err)
	}

	seq, _ := StageSequence(models.FulfillmentDelivery)
	for _, stage := range seq[1:] {
		if err := m.AdvanceStage(order, stage); err != nil {
			t.Fatalf("AdvanceStage(%q): %v", stage, err)
		}
	}

	if order.Status != models.OrderStatusCompleted {
		t.Errorf("order status = %q, want %q", order.Status, models.OrderStatusCompleted)
	}

	// Every stage plus the receipt event carries exactly one timestamp.
	wantKeys := map[string]bool{string(StampDroppedOff): true}
	for _, stage := range seq {
		wantKeys[string(stage)] = true
	}
	if len(order.StageTimestamps) != len(wantKeys) {
		t.Errorf("timestamp count = %d, want %d", len(order.StageTimestamps), len(wantKeys))
	}
	for key := range wantKeys {
		if _, ok := order.StageTimestamps[key]; !ok {
			t.Errorf("missing timestamp for %q", key)
		}
	}
}
