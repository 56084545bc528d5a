package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fishtrade-backend/internal/domains/inventory/model"
	"fishtrade-backend/internal/domains/inventory/repository"
	"fishtrade-backend/pkg/logger"
)

const defaultTransactionLimit = 100

type inventoryService struct {
	repo repository.Repository
}

// NewInventoryService wires the service with its repository.
func NewInventoryService(repo repository.Repository) ServiceInterface {
	return &inventoryService{repo: repo}
}

// ========================================
// ITEM CRUD
// ========================================

func (s *inventoryService) CreateItem(ctx context.Context, req model.CreateItemRequest, createdBy *uuid.UUID) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, req.ItemName); err == nil {
		return nil, model.ErrDuplicateItemName
	} else if !errors.Is(err, model.ErrItemNotFound) {
		return nil, fmt.Errorf("check item name: %w", err)
	}

	item := &model.Item{
		ItemName:     req.ItemName,
		CurrentStock: req.CurrentStock,
		MinThreshold: req.MinThreshold,
		Unit:         req.Unit,
		CostPerUnit:  req.CostPerUnit,
		UpdatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	if req.CurrentStock > 0 {
		s.logMovement(ctx, &model.Transaction{
			InventoryID:    item.ID,
			Type:           model.TxAdd,
			QuantityChange: req.CurrentStock,
			PreviousStock:  0,
			NewStock:       req.CurrentStock,
			Notes:          "Initial stock",
			CreatedBy:      createdBy,
		})
	}

	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *inventoryService) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.repo.List(ctx)
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest, updatedBy *uuid.UUID) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil && *req.ItemName != item.ItemName {
		exists, err := s.repo.ExistsByName(ctx, *req.ItemName, &id)
		if err != nil {
			return nil, fmt.Errorf("check item name: %w", err)
		}
		if exists {
			return nil, model.ErrDuplicateItemName
		}
		item.ItemName = *req.ItemName
	}
	if req.MinThreshold != nil {
		item.MinThreshold = *req.MinThreshold
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = *req.CostPerUnit
	}

	previousStock := item.CurrentStock
	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	item.UpdatedBy = updatedBy

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	// a direct stock edit still leaves a ledger trail
	if req.CurrentStock != nil && *req.CurrentStock != previousStock {
		s.logMovement(ctx, &model.Transaction{
			InventoryID:    item.ID,
			Type:           model.TxUpdate,
			QuantityChange: item.CurrentStock - previousStock,
			PreviousStock:  previousStock,
			NewStock:       item.CurrentStock,
			Notes:          "Stock corrected via item update",
			CreatedBy:      updatedBy,
		})
	}

	return item, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req model.AdjustStockRequest, adjustedBy *uuid.UUID) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := item.CurrentStock
	next := previous + req.Change
	if next < 0 {
		return nil, model.ErrNegativeStock
	}

	item.CurrentStock = next
	item.UpdatedBy = adjustedBy
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	txType := model.TxAdd
	if req.Change < 0 {
		txType = model.TxRemove
	}
	s.logMovement(ctx, &model.Transaction{
		InventoryID:    item.ID,
		Type:           txType,
		QuantityChange: req.Change,
		PreviousStock:  previous,
		NewStock:       next,
		Notes:          req.Notes,
		CreatedBy:      adjustedBy,
	})

	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ========================================
// ALERTS & LEDGER
// ========================================

func (s *inventoryService) ListAlerts(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *inventoryService) ListTransactions(ctx context.Context, inventoryID *uuid.UUID, txType *model.TransactionType, limit int) ([]model.Transaction, error) {
	if txType != nil && !txType.IsValid() {
		return nil, model.ErrInvalidTxType
	}
	if limit <= 0 || limit > 500 {
		limit = defaultTransactionLimit
	}
	return s.repo.ListTransactions(ctx, inventoryID, txType, limit)
}

// ========================================
// REPORT CONSUMPTION
// ========================================

func (s *inventoryService) CheckAvailability(ctx context.Context, tx pgx.Tx, req model.Requirements) ([]model.Shortfall, error) {
	names := requiredItemNames(req)
	if len(names) == 0 {
		return nil, nil
	}

	locked, err := s.repo.LockByNames(ctx, tx, names)
	if err != nil {
		return nil, err
	}

	var shortfalls []model.Shortfall
	for _, field := range sortedFields(req) {
		required := req[field]
		if required <= 0 {
			continue
		}
		itemName := model.ConsumableItems[field]
		available := 0
		if item, ok := locked[strings.ToLower(itemName)]; ok {
			available = item.CurrentStock
		}
		if available < required {
			shortfalls = append(shortfalls, model.Shortfall{
				Item:      itemName,
				Available: available,
				Required:  required,
			})
		}
	}
	return shortfalls, nil
}

func (s *inventoryService) Deduct(ctx context.Context, tx pgx.Tx, req model.Requirements, userID *uuid.UUID, reportDate time.Time) error {
	names := requiredItemNames(req)
	if len(names) == 0 {
		return nil
	}

	locked, err := s.repo.LockByNames(ctx, tx, names)
	if err != nil {
		return err
	}

	notes := fmt.Sprintf("Used in daily report %s", reportDate.Format("2006-01-02"))
	for _, field := range sortedFields(req) {
		required := req[field]
		if required <= 0 {
			continue
		}
		itemName := model.ConsumableItems[field]
		item, ok := locked[strings.ToLower(itemName)]
		if !ok {
			return &model.InsufficientStockError{Shortfalls: []model.Shortfall{
				{Item: itemName, Available: 0, Required: required},
			}}
		}

		previous, current, err := s.repo.DeductTx(ctx, tx, item.ID, required, userID)
		if err != nil {
			return err
		}

		entry := &model.Transaction{
			InventoryID:    item.ID,
			Type:           model.TxRemove,
			QuantityChange: -required,
			PreviousStock:  previous,
			NewStock:       current,
			Notes:          notes,
			CreatedBy:      userID,
		}
		if err := s.repo.AppendTransactionTx(ctx, tx, entry); err != nil {
			return err
		}
	}
	return nil
}

// ========================================
// SEEDING
// ========================================

func (s *inventoryService) EnsureDefaults(ctx context.Context) (int, error) {
	created, err := s.repo.EnsureDefaults(ctx, model.DefaultItems)
	if err != nil {
		return created, err
	}
	if created > 0 {
		logger.Info("seeded default inventory items", map[string]interface{}{
			"created": created,
		})
	}
	return created, nil
}

// ========================================
// HELPERS
// ========================================

func requiredItemNames(req model.Requirements) []string {
	names := make([]string, 0, len(req))
	for field, qty := range req {
		if qty <= 0 {
			continue
		}
		if name, ok := model.ConsumableItems[field]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// sortedFields keeps lock ordering deterministic across transactions.
func sortedFields(req model.Requirements) []string {
	fields := make([]string, 0, len(req))
	for field := range req {
		if _, ok := model.ConsumableItems[field]; ok {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// logMovement appends a ledger entry outside the report path; failures
// here must not undo the stock change that already happened, so they
// are logged and swallowed.
func (s *inventoryService) logMovement(ctx context.Context, entry *model.Transaction) {
	if err := s.repo.AppendTransaction(ctx, entry); err != nil {
		logger.Error("failed to append inventory transaction", err)
	}
}
