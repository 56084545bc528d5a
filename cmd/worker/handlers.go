package main

import (
	"github.com/hibiken/asynq"

	inventoryJob "fishtrade-backend/internal/domains/inventory/job"
	"fishtrade-backend/internal/shared"
	"fishtrade-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	lowStockScan  *inventoryJob.LowStockScanHandler
	inventorySeed *inventoryJob.SeedHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		lowStockScan:  inventoryJob.NewLowStockScanHandler(c.InventoryService, c.Publisher),
		inventorySeed: inventoryJob.NewSeedHandler(c.InventoryService),
	}
}

// RegisterHandlers maps task types to their handlers.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeLowStockScan, h.lowStockScan.ProcessTask)
	mux.HandleFunc(shared.TypeInventorySeed, h.inventorySeed.ProcessTask)
}
