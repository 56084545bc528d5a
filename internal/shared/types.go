package shared

// Asynq task types
const (
	TypeLowStockScan  = "inventory:low_stock_scan"
	TypeInventorySeed = "inventory:seed_defaults"
)

// Queue names
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// LowStockScanPayload is empty today; kept as a struct so fields can be
// added without changing the task type.
type LowStockScanPayload struct{}

// InventorySeedPayload carries the operator that requested the seed, for
// the transaction audit trail.
type InventorySeedPayload struct {
	RequestedBy string `json:"requested_by,omitempty"`
}
