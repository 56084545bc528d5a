package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fishtrade-backend/internal/domains/inventory/model"
)

// ServiceInterface is the business contract for the inventory ledger.
type ServiceInterface interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest, createdBy *uuid.UUID) (*model.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest, updatedBy *uuid.UUID) (*model.Item, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req model.AdjustStockRequest, adjustedBy *uuid.UUID) (*model.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ListAlerts(ctx context.Context) ([]model.Item, error)

	// ListTransactions reads the ledger, optionally filtered by item
	// and transaction type. An unknown type yields ErrInvalidTxType.
	ListTransactions(ctx context.Context, inventoryID *uuid.UUID, txType *model.TransactionType, limit int) ([]model.Transaction, error)

	// CheckAvailability verifies the consumable requirements of a daily
	// report against locked stock rows. Missing items count as zero
	// stock. Returns nil when everything is covered.
	CheckAvailability(ctx context.Context, tx pgx.Tx, req model.Requirements) ([]model.Shortfall, error)

	// Deduct consumes locked stock inside the caller's transaction,
	// appending one `remove` ledger entry per item.
	Deduct(ctx context.Context, tx pgx.Tx, req model.Requirements, userID *uuid.UUID, reportDate time.Time) error

	// EnsureDefaults seeds the standard items; returns how many were created.
	EnsureDefaults(ctx context.Context) (int, error)
}
