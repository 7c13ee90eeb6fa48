package routes

import (
	"laundry-service-server/realtime"
	"laundry-service-server/services"
	ws "laundry-service-server/websocket"
)

// Package-level handles shared by all route handlers, set once at startup.
var (
	feed         *realtime.Feed
	syncer       *realtime.Syncer
	hub          *ws.Hub
	stageMachine *services.StageMachine
)

// Init wires the route handlers to the realtime layer and websocket hub
func Init(s *realtime.Syncer, h *ws.Hub) {
	syncer = s
	feed = s.Feed()
	hub = h
	stageMachine = services.NewStageMachine(services.NewGormOrderStore(), realtime.NewStagePublisher(feed))
}

// publish pushes a change event onto the feed after a successful mutation
func publish(res realtime.Resource, op realtime.Operation, oldRow, newRow interface{}) {
	if feed == nil {
		return
	}
	ev := realtime.ChangeEvent{Resource: res, Op: op}
	if oldRow != nil {
		ev.Old = realtime.ToRow(oldRow)
	}
	if newRow != nil {
		ev.New = realtime.ToRow(newRow)
	}
	feed.Publish(ev)
}
