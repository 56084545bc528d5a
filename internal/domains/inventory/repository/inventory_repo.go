package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fishtrade-backend/internal/domains/inventory/model"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the pgx-backed inventory repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const itemColumns = `id, item_name, current_stock, min_threshold, unit, cost_per_unit, updated_by, created_at, updated_at`

// ========================================
// ITEMS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO inventory_items (item_name, current_stock, min_threshold, unit, cost_per_unit, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ItemName, item.CurrentStock, item.MinThreshold,
		item.Unit, item.CostPerUnit, item.UpdatedBy,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateItemName
		}
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE id = $1`, itemColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE LOWER(item_name) = LOWER($1)`, itemColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM inventory_items
		WHERE LOWER(item_name) = LOWER($1) AND ($2::uuid IS NULL OR id != $2)
	)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE inventory_items
		SET item_name = $2, current_stock = $3, min_threshold = $4,
		    unit = $5, cost_per_unit = $6, updated_by = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		item.ID, item.ItemName, item.CurrentStock, item.MinThreshold,
		item.Unit, item.CostPerUnit, item.UpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateItemName
		}
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items ORDER BY item_name ASC`, itemColumns)
	return r.queryItems(ctx, query)
}

func (r *postgresRepository) ListLowStock(ctx context.Context) ([]model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE current_stock <= min_threshold ORDER BY item_name ASC`, itemColumns)
	return r.queryItems(ctx, query)
}

func (r *postgresRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) scanOne(row pgx.Row) (*model.Item, error) {
	var item model.Item
	if err := scanItem(row, &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func scanItem(row pgx.Row, item *model.Item) error {
	err := row.Scan(
		&item.ID, &item.ItemName, &item.CurrentStock, &item.MinThreshold,
		&item.Unit, &item.CostPerUnit, &item.UpdatedBy,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return fmt.Errorf("failed to scan inventory item: %w", err)
	}
	return nil
}

// ========================================
// TRANSACTION LEDGER
// ========================================

func (r *postgresRepository) AppendTransaction(ctx context.Context, entry *model.Transaction) error {
	query := `
		INSERT INTO inventory_transactions
			(inventory_id, transaction_type, quantity_change, previous_stock, new_stock, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		entry.InventoryID, entry.Type, entry.QuantityChange,
		entry.PreviousStock, entry.NewStock, entry.Notes, entry.CreatedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append inventory transaction: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListTransactions(ctx context.Context, inventoryID *uuid.UUID, txType *model.TransactionType, limit int) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.inventory_id, i.item_name, t.transaction_type, t.quantity_change,
		       t.previous_stock, t.new_stock, t.notes, t.created_by, t.created_at
		FROM inventory_transactions t
		JOIN inventory_items i ON i.id = t.inventory_id
		WHERE ($1::uuid IS NULL OR t.inventory_id = $1)
		  AND ($2::text IS NULL OR t.transaction_type = $2)
		ORDER BY t.created_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, inventoryID, txType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]model.Transaction, 0)
	for rows.Next() {
		var e model.Transaction
		err := rows.Scan(
			&e.ID, &e.InventoryID, &e.ItemName, &e.Type, &e.QuantityChange,
			&e.PreviousStock, &e.NewStock, &e.Notes, &e.CreatedBy, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory transactions: %w", err)
	}
	return entries, nil
}

// ========================================
// TRANSACTION-SCOPED OPERATIONS
// ========================================

// LockByNames locks the named items with SELECT ... FOR UPDATE so the
// availability check and the deduction that follows cannot race with a
// concurrent report. Matching is case-insensitive, same as the name
// uniqueness rule, and the returned map is keyed by the lowercased
// name. Names absent from the table are simply missing from the map.
func (r *postgresRepository) LockByNames(ctx context.Context, tx pgx.Tx, names []string) (map[string]*model.Item, error) {
	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(name)
	}

	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE LOWER(item_name) = ANY($1) FOR UPDATE`, itemColumns)

	rows, err := tx.Query(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory items: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]*model.Item, len(names))
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, err
		}
		locked[strings.ToLower(item.ItemName)] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locked items: %w", err)
	}
	return locked, nil
}

// DeductTx lowers stock inside the caller's transaction. The WHERE
// guard makes a negative result impossible even if the caller skipped
// the availability check.
func (r *postgresRepository) DeductTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, quantity int, updatedBy *uuid.UUID) (int, int, error) {
	query := `
		UPDATE inventory_items
		SET current_stock = current_stock - $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND current_stock >= $2
		RETURNING current_stock + $2, current_stock`

	var previous, current int
	err := tx.QueryRow(ctx, query, itemID, quantity, updatedBy).Scan(&previous, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, model.ErrNegativeStock
		}
		return 0, 0, fmt.Errorf("failed to deduct stock: %w", err)
	}
	return previous, current, nil
}

func (r *postgresRepository) AppendTransactionTx(ctx context.Context, tx pgx.Tx, entry *model.Transaction) error {
	query := `
		INSERT INTO inventory_transactions
			(inventory_id, transaction_type, quantity_change, previous_stock, new_stock, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		entry.InventoryID, entry.Type, entry.QuantityChange,
		entry.PreviousStock, entry.NewStock, entry.Notes, entry.CreatedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append inventory transaction: %w", err)
	}
	return nil
}

// ========================================
// SEEDING
// ========================================

// EnsureDefaults inserts the standard items that are missing. Existing
// rows (any casing) are left untouched.
func (r *postgresRepository) EnsureDefaults(ctx context.Context, defaults []model.DefaultItem) (int, error) {
	query := `
		INSERT INTO inventory_items (item_name, current_stock, min_threshold, unit, cost_per_unit)
		SELECT $1, 0, 0, $2, 0
		WHERE NOT EXISTS (
			SELECT 1 FROM inventory_items WHERE LOWER(item_name) = LOWER($1)
		)`

	created := 0
	for _, d := range defaults {
		tag, err := r.pool.Exec(ctx, query, d.Name, d.Unit)
		if err != nil {
			return created, fmt.Errorf("failed to seed item %q: %w", d.Name, err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}
