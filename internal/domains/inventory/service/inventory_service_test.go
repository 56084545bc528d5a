package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishtrade-backend/internal/domains/inventory/model"
)

// ========================================
// FAKE REPOSITORY
// ========================================

type fakeRepo struct {
	items   map[uuid.UUID]*model.Item
	ledger  []model.Transaction
	seedLog []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (f *fakeRepo) addItem(name string, stock, threshold int) *model.Item {
	item := &model.Item{
		ID:           uuid.New(),
		ItemName:     name,
		CurrentStock: stock,
		MinThreshold: threshold,
		Unit:         "piece",
	}
	f.items[item.ID] = item
	return item
}

func (f *fakeRepo) Create(_ context.Context, item *model.Item) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeRepo) FindByName(_ context.Context, name string) (*model.Item, error) {
	for _, item := range f.items {
		if strings.EqualFold(item.ItemName, name) {
			clone := *item
			return &clone, nil
		}
	}
	return nil, model.ErrItemNotFound
}

func (f *fakeRepo) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for _, item := range f.items {
		if strings.EqualFold(item.ItemName, name) {
			if excludeID != nil && item.ID == *excludeID {
				continue
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(_ context.Context, item *model.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return model.ErrItemNotFound
	}
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return model.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) ListLowStock(_ context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0)
	for _, item := range f.items {
		if item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendTransaction(_ context.Context, entry *model.Transaction) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.ledger = append(f.ledger, *entry)
	return nil
}

func (f *fakeRepo) ListTransactions(_ context.Context, inventoryID *uuid.UUID, txType *model.TransactionType, limit int) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0)
	for i := len(f.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if inventoryID != nil && f.ledger[i].InventoryID != *inventoryID {
			continue
		}
		if txType != nil && f.ledger[i].Type != *txType {
			continue
		}
		out = append(out, f.ledger[i])
	}
	return out, nil
}

func (f *fakeRepo) LockByNames(_ context.Context, _ pgx.Tx, names []string) (map[string]*model.Item, error) {
	locked := make(map[string]*model.Item)
	for _, item := range f.items {
		for _, name := range names {
			if strings.EqualFold(item.ItemName, name) {
				locked[strings.ToLower(item.ItemName)] = item
			}
		}
	}
	return locked, nil
}

func (f *fakeRepo) DeductTx(_ context.Context, _ pgx.Tx, itemID uuid.UUID, quantity int, updatedBy *uuid.UUID) (int, int, error) {
	item, ok := f.items[itemID]
	if !ok || item.CurrentStock < quantity {
		return 0, 0, model.ErrNegativeStock
	}
	previous := item.CurrentStock
	item.CurrentStock -= quantity
	item.UpdatedBy = updatedBy
	return previous, item.CurrentStock, nil
}

func (f *fakeRepo) AppendTransactionTx(ctx context.Context, _ pgx.Tx, entry *model.Transaction) error {
	return f.AppendTransaction(ctx, entry)
}

func (f *fakeRepo) EnsureDefaults(_ context.Context, defaults []model.DefaultItem) (int, error) {
	created := 0
	for _, d := range defaults {
		if _, err := f.FindByName(context.Background(), d.Name); err == nil {
			continue
		}
		f.addItem(d.Name, 0, 0)
		f.seedLog = append(f.seedLog, d.Name)
		created++
	}
	return created, nil
}

// ========================================
// AVAILABILITY
// ========================================

func TestCheckAvailability_AllCovered(t *testing.T) {
	repo := newFakeRepo()
	repo.addItem("Ice", 50, 5)
	repo.addItem("Plastic", 20, 5)
	svc := NewInventoryService(repo)

	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{
		"ice":     10,
		"plastic": 5,
	})
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestCheckAvailability_ReportsShortfall(t *testing.T) {
	repo := newFakeRepo()
	repo.addItem("Ice", 3, 5)
	svc := NewInventoryService(repo)

	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{"ice": 10})
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, model.Shortfall{Item: "Ice", Available: 3, Required: 10}, shortfalls[0])
}

func TestCheckAvailability_MissingItemCountsAsZero(t *testing.T) {
	svc := NewInventoryService(newFakeRepo())

	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{"tape": 2})
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, model.Shortfall{Item: "Tape", Available: 0, Required: 2}, shortfalls[0])
}

func TestCheckAvailability_ZeroRequirementsSkipped(t *testing.T) {
	svc := NewInventoryService(newFakeRepo())

	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{
		"ice": 0, "plastic": 0,
	})
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestCheckAvailability_UnmappedFieldIgnored(t *testing.T) {
	svc := NewInventoryService(newFakeRepo())

	// fish and boxes never touch the ledger
	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{"fish": 100})
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestCheckAvailability_ItemNameCaseInsensitive(t *testing.T) {
	repo := newFakeRepo()
	repo.addItem("ICE", 50, 5)
	svc := NewInventoryService(repo)

	shortfalls, err := svc.CheckAvailability(context.Background(), nil, model.Requirements{"ice": 10})
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

// ========================================
// DEDUCTION
// ========================================

func TestDeduct_WritesRemoveEntries(t *testing.T) {
	repo := newFakeRepo()
	ice := repo.addItem("Ice", 50, 5)
	repo.addItem("Tape", 10, 2)
	svc := NewInventoryService(repo)

	userID := uuid.New()
	reportDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	err := svc.Deduct(context.Background(), nil, model.Requirements{"ice": 10, "tape": 2}, &userID, reportDate)
	require.NoError(t, err)

	assert.Equal(t, 40, repo.items[ice.ID].CurrentStock)
	require.Len(t, repo.ledger, 2)

	for _, entry := range repo.ledger {
		assert.Equal(t, model.TxRemove, entry.Type)
		assert.Negative(t, entry.QuantityChange)
		assert.Equal(t, entry.PreviousStock+entry.QuantityChange, entry.NewStock)
		assert.Contains(t, entry.Notes, "2026-08-28")
		require.NotNil(t, entry.CreatedBy)
		assert.Equal(t, userID, *entry.CreatedBy)
	}
}

func TestDeduct_ItemNameCaseInsensitive(t *testing.T) {
	repo := newFakeRepo()
	ice := repo.addItem("ICE", 50, 5)
	svc := NewInventoryService(repo)

	err := svc.Deduct(context.Background(), nil, model.Requirements{"ice": 10}, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 40, repo.items[ice.ID].CurrentStock)
}

func TestDeduct_MissingItemFails(t *testing.T) {
	svc := NewInventoryService(newFakeRepo())

	err := svc.Deduct(context.Background(), nil, model.Requirements{"ice_chest": 1}, nil, time.Now())
	var insufficient *model.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Ice Chest", insufficient.Shortfalls[0].Item)
}

// ========================================
// CRUD + LEDGER
// ========================================

func TestCreateItem_LogsInitialStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewInventoryService(repo)

	item, err := svc.CreateItem(context.Background(), model.CreateItemRequest{
		ItemName:     "Rope",
		CurrentStock: 30,
		MinThreshold: 5,
		Unit:         "roll",
	}, nil)
	require.NoError(t, err)

	require.Len(t, repo.ledger, 1)
	entry := repo.ledger[0]
	assert.Equal(t, item.ID, entry.InventoryID)
	assert.Equal(t, model.TxAdd, entry.Type)
	assert.Equal(t, 30, entry.QuantityChange)
	assert.Equal(t, "Initial stock", entry.Notes)
}

func TestCreateItem_DuplicateNameCaseInsensitive(t *testing.T) {
	repo := newFakeRepo()
	repo.addItem("Ice", 10, 2)
	svc := NewInventoryService(repo)

	_, err := svc.CreateItem(context.Background(), model.CreateItemRequest{
		ItemName: "ICE",
		Unit:     "block",
	}, nil)
	assert.ErrorIs(t, err, model.ErrDuplicateItemName)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	repo := newFakeRepo()
	item := repo.addItem("Ice", 5, 2)
	svc := NewInventoryService(repo)

	_, err := svc.AdjustStock(context.Background(), item.ID, model.AdjustStockRequest{Change: -10}, nil)
	assert.ErrorIs(t, err, model.ErrNegativeStock)
	assert.Equal(t, 5, repo.items[item.ID].CurrentStock)
	assert.Empty(t, repo.ledger)
}

func TestAdjustStock_LogsDirection(t *testing.T) {
	repo := newFakeRepo()
	item := repo.addItem("Ice", 5, 2)
	svc := NewInventoryService(repo)

	_, err := svc.AdjustStock(context.Background(), item.ID, model.AdjustStockRequest{Change: 7, Notes: "restock"}, nil)
	require.NoError(t, err)
	_, err = svc.AdjustStock(context.Background(), item.ID, model.AdjustStockRequest{Change: -4, Notes: "spoilage"}, nil)
	require.NoError(t, err)

	require.Len(t, repo.ledger, 2)
	assert.Equal(t, model.TxAdd, repo.ledger[0].Type)
	assert.Equal(t, model.TxRemove, repo.ledger[1].Type)
	assert.Equal(t, 8, repo.items[item.ID].CurrentStock)
}

func TestUpdateItem_StockEditLeavesTrail(t *testing.T) {
	repo := newFakeRepo()
	item := repo.addItem("Ice", 5, 2)
	svc := NewInventoryService(repo)

	newStock := 12
	_, err := svc.UpdateItem(context.Background(), item.ID, model.UpdateItemRequest{CurrentStock: &newStock}, nil)
	require.NoError(t, err)

	require.Len(t, repo.ledger, 1)
	entry := repo.ledger[0]
	assert.Equal(t, model.TxUpdate, entry.Type)
	assert.Equal(t, 7, entry.QuantityChange)
	assert.Equal(t, 5, entry.PreviousStock)
	assert.Equal(t, 12, entry.NewStock)
}

func TestListTransactions_FiltersByType(t *testing.T) {
	repo := newFakeRepo()
	item := repo.addItem("Ice", 5, 2)
	svc := NewInventoryService(repo)

	_, err := svc.AdjustStock(context.Background(), item.ID, model.AdjustStockRequest{Change: 7, Notes: "restock"}, nil)
	require.NoError(t, err)
	_, err = svc.AdjustStock(context.Background(), item.ID, model.AdjustStockRequest{Change: -4, Notes: "spoilage"}, nil)
	require.NoError(t, err)

	removes := model.TxRemove
	entries, err := svc.ListTransactions(context.Background(), nil, &removes, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TxRemove, entries[0].Type)
}

func TestListTransactions_RejectsUnknownType(t *testing.T) {
	svc := NewInventoryService(newFakeRepo())

	bogus := model.TransactionType("transfer")
	_, err := svc.ListTransactions(context.Background(), nil, &bogus, 0)
	assert.ErrorIs(t, err, model.ErrInvalidTxType)
}

// ========================================
// SEEDING
// ========================================

func TestEnsureDefaults_CreatesMissingOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addItem("Ice", 10, 2)
	svc := NewInventoryService(repo)

	created, err := svc.EnsureDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultItems)-1, created)
	assert.NotContains(t, repo.seedLog, "Ice")

	// idempotent on second run
	created, err = svc.EnsureDefaults(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)
}
