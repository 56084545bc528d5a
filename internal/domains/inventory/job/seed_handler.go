package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"fishtrade-backend/internal/domains/inventory/service"
	"fishtrade-backend/internal/shared"
	"fishtrade-backend/pkg/logger"
)

// SeedHandler creates the standard stock items when they are missing.
// Enqueued once at worker startup and available on demand.
type SeedHandler struct {
	service service.ServiceInterface
}

func NewSeedHandler(service service.ServiceInterface) *SeedHandler {
	return &SeedHandler{service: service}
}

func (h *SeedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.InventorySeedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// broken payload, retrying will not fix it
		return fmt.Errorf("unmarshal InventorySeed payload: %w", err)
	}

	created, err := h.service.EnsureDefaults(ctx)
	if err != nil {
		logger.Error("InventorySeed: EnsureDefaults failed", err)
		return err
	}

	logger.Info("InventorySeed: completed", map[string]interface{}{
		"created":      created,
		"requested_by": payload.RequestedBy,
	})
	return nil
}
