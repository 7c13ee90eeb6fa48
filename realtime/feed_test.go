package realtime

import (
	"sync"
	"testing"
)

func TestFeedPublishConcurrentWithClose(t *testing.T) {
	f := NewFeed()

	// Drain so publishers never hit the full-buffer path.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range f.Events() {
		}
	}()

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				f.Publish(ChangeEvent{Resource: ResourceOrders, Op: OpUpdate})
			}
		}()
	}

	close(start)
	f.Close()
	wg.Wait()
	<-drained
}

func TestFeedPublishAfterClose(t *testing.T) {
	f := NewFeed()
	f.Close()

	// Must be a silent no-op, not a panic.
	f.Publish(ChangeEvent{Resource: ResourceOrders, Op: OpInsert})
	f.Close()

	if _, ok := <-f.Events(); ok {
		t.Error("closed feed delivered an event")
	}
}

func TestFeedDeliversBufferedEventsThroughClose(t *testing.T) {
	f := NewFeed()
	for i := 0; i < 3; i++ {
		f.Publish(ChangeEvent{Resource: ResourceUsers, Op: OpInsert})
	}
	f.Close()

	got := 0
	for ev := range f.Events() {
		if ev.Timestamp.IsZero() {
			t.Error("Publish should stamp events with the current time")
		}
		got++
	}
	if got != 3 {
		t.Errorf("drained %d events, want 3", got)
	}
}
