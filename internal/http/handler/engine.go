package handler

import (
	"backend-hospital/internal/config"
	"backend-hospital/internal/queue"
	"backend-hospital/internal/store"
)

var engine *queue.Engine

// InitEngine wires the coordination engine to the MySQL-backed stores.
// Must run after config.InitDB.
func InitEngine() {
	engine = queue.NewEngine(
		store.NewQueueStore(config.DB),
		store.NewProfileStore(config.DB),
		store.NewRecordStore(config.DB),
	)
}
