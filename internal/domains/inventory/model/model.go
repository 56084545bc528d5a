package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a row in the inventory_items table.
type Item struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	ItemName     string          `db:"item_name" json:"item_name"` // unique, case-insensitive
	CurrentStock int             `db:"current_stock" json:"current_stock"`
	MinThreshold int             `db:"min_threshold" json:"min_threshold"`
	Unit         string          `db:"unit" json:"unit"`
	CostPerUnit  decimal.Decimal `db:"cost_per_unit" json:"cost_per_unit"`
	UpdatedBy    *uuid.UUID      `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// IsLowStock reports whether the item is at or below its alert threshold.
func (i *Item) IsLowStock() bool {
	return i.CurrentStock <= i.MinThreshold
}

// TransactionType classifies ledger entries.
type TransactionType string

const (
	TxAdd    TransactionType = "add"
	TxRemove TransactionType = "remove"
	TxUpdate TransactionType = "update"
)

func (t TransactionType) IsValid() bool {
	return t == TxAdd || t == TxRemove || t == TxUpdate
}

// Transaction is one append-only ledger entry. Rows are never updated
// or deleted; the ledger is the audit trail for every stock movement.
type Transaction struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	InventoryID    uuid.UUID       `db:"inventory_id" json:"inventory_id"`
	ItemName       string          `db:"item_name" json:"item_name,omitempty"` // joined on reads
	Type           TransactionType `db:"transaction_type" json:"type"`
	QuantityChange int             `db:"quantity_change" json:"quantity_change"`
	PreviousStock  int             `db:"previous_stock" json:"previous_stock"`
	NewStock       int             `db:"new_stock" json:"new_stock"`
	Notes          string          `db:"notes" json:"notes"`
	CreatedBy      *uuid.UUID      `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// ConsumableItems maps daily-report consumable fields to the stocked
// item names they draw down. Fish and boxes are deliberately absent:
// fish is the traded good and boxes arrive with each shipment.
var ConsumableItems = map[string]string{
	"ice":       "Ice",
	"plastic":   "Plastic",
	"tape":      "Tape",
	"ice_chest": "Ice Chest",
}

// Requirements is the per-field consumption a report asks for,
// keyed by report field name (ice, plastic, tape, ice_chest).
type Requirements map[string]int

// Shortfall describes one item that cannot cover a requirement.
type Shortfall struct {
	Item      string `json:"item"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

// DefaultItem is a seed row created on first boot.
type DefaultItem struct {
	Name string
	Unit string
}

// DefaultItems are the stock items the trading operation always tracks.
var DefaultItems = []DefaultItem{
	{Name: "Fish", Unit: "kg"},
	{Name: "Ice", Unit: "block"},
	{Name: "Plastic", Unit: "roll"},
	{Name: "Tape", Unit: "roll"},
	{Name: "Ice Chest", Unit: "piece"},
	{Name: "Box", Unit: "piece"},
}
