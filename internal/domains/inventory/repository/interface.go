package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fishtrade-backend/internal/domains/inventory/model"
)

// Repository is the persistence contract for inventory items and
// their append-only transaction ledger.
type Repository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindByName(ctx context.Context, name string) (*model.Item, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Item, error)
	ListLowStock(ctx context.Context) ([]model.Item, error)

	AppendTransaction(ctx context.Context, tx *model.Transaction) error
	ListTransactions(ctx context.Context, inventoryID *uuid.UUID, txType *model.TransactionType, limit int) ([]model.Transaction, error)

	// Transaction-scoped operations, used inside the report-create
	// transaction so availability check and deduction see one snapshot.
	// LockByNames matches case-insensitively and keys the returned map
	// by the lowercased item name.
	LockByNames(ctx context.Context, tx pgx.Tx, names []string) (map[string]*model.Item, error)
	DeductTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, quantity int, updatedBy *uuid.UUID) (previous, current int, err error)
	AppendTransactionTx(ctx context.Context, tx pgx.Tx, entry *model.Transaction) error

	// EnsureDefaults seeds the standard stock items when missing.
	EnsureDefaults(ctx context.Context, defaults []model.DefaultItem) (created int, err error)
}
