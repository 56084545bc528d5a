package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"fishtrade-backend/internal/domains/inventory/service"
	"fishtrade-backend/internal/domains/notification"
	"fishtrade-backend/pkg/logger"
)

// LowStockScanHandler runs the hourly stock sweep: any item at or
// below its alert threshold produces one inventory_alert event on the
// notifications channel.
type LowStockScanHandler struct {
	service   service.ServiceInterface
	publisher notification.Publisher
}

func NewLowStockScanHandler(service service.ServiceInterface, publisher notification.Publisher) *LowStockScanHandler {
	return &LowStockScanHandler{
		service:   service,
		publisher: publisher,
	}
}

func (h *LowStockScanHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	items, err := h.service.ListAlerts(ctx)
	if err != nil {
		// DB error → let asynq retry
		logger.Error("LowStockScan: failed to list alerts", err)
		return err
	}

	if len(items) == 0 {
		logger.Debug("LowStockScan: all items above threshold")
		return nil
	}

	alerts := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, map[string]interface{}{
			"item_name":     item.ItemName,
			"current_stock": item.CurrentStock,
			"min_threshold": item.MinThreshold,
			"unit":          item.Unit,
		})
	}

	h.publisher.Publish(ctx, notification.Event{
		Type:     notification.EventInventoryAlert,
		Title:    "Low stock alert",
		Message:  fmt.Sprintf("%d item(s) at or below threshold", len(items)),
		Data:     map[string]interface{}{"items": alerts},
		Audience: notification.AudienceAdmins,
	})

	logger.Info("LowStockScan: alert published", map[string]interface{}{
		"item_count": len(items),
	})
	return nil
}
