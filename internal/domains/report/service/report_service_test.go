package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorymodel "fishtrade-backend/internal/domains/inventory/model"
	"fishtrade-backend/internal/domains/notification"
	"fishtrade-backend/internal/domains/report/model"
)

// ========================================
// FAKES
// ========================================

type fakeRepo struct {
	reports  map[uuid.UUID]*model.Report
	inserted int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: make(map[uuid.UUID]*model.Report)}
}

func (f *fakeRepo) WithinTransaction(_ context.Context, fn func(pgx.Tx) error) error {
	return fn(nil)
}

func (f *fakeRepo) InsertTx(_ context.Context, _ pgx.Tx, report *model.Report) error {
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	f.reports[report.ID] = report
	f.inserted++
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, model.ErrReportNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) Update(_ context.Context, report *model.Report) error {
	if _, ok := f.reports[report.ID]; !ok {
		return model.ErrReportNotFound
	}
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reports[id]; !ok {
		return model.ErrReportNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, filter model.Filter) ([]model.Report, error) {
	out := make([]model.Report, 0)
	for _, r := range f.reports {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.DateFrom != nil && r.ReportDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.ReportDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

// fakeInventory satisfies the inventory service contract; shortfalls
// and deduction calls are scripted per test.
type fakeInventory struct {
	shortfalls  []inventorymodel.Shortfall
	deductCalls int
	deducted    inventorymodel.Requirements
}

func (f *fakeInventory) CheckAvailability(_ context.Context, _ pgx.Tx, _ inventorymodel.Requirements) ([]inventorymodel.Shortfall, error) {
	return f.shortfalls, nil
}

func (f *fakeInventory) Deduct(_ context.Context, _ pgx.Tx, req inventorymodel.Requirements, _ *uuid.UUID, _ time.Time) error {
	f.deductCalls++
	f.deducted = req
	return nil
}

func (f *fakeInventory) CreateItem(_ context.Context, _ inventorymodel.CreateItemRequest, _ *uuid.UUID) (*inventorymodel.Item, error) {
	return nil, nil
}
func (f *fakeInventory) GetItem(_ context.Context, _ uuid.UUID) (*inventorymodel.Item, error) {
	return nil, nil
}
func (f *fakeInventory) ListItems(_ context.Context) ([]inventorymodel.Item, error) { return nil, nil }
func (f *fakeInventory) UpdateItem(_ context.Context, _ uuid.UUID, _ inventorymodel.UpdateItemRequest, _ *uuid.UUID) (*inventorymodel.Item, error) {
	return nil, nil
}
func (f *fakeInventory) AdjustStock(_ context.Context, _ uuid.UUID, _ inventorymodel.AdjustStockRequest, _ *uuid.UUID) (*inventorymodel.Item, error) {
	return nil, nil
}
func (f *fakeInventory) DeleteItem(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeInventory) ListAlerts(_ context.Context) ([]inventorymodel.Item, error) {
	return nil, nil
}
func (f *fakeInventory) ListTransactions(_ context.Context, _ *uuid.UUID, _ *inventorymodel.TransactionType, _ int) ([]inventorymodel.Transaction, error) {
	return nil, nil
}
func (f *fakeInventory) EnsureDefaults(_ context.Context) (int, error) { return 0, nil }

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.store {
		if strings.HasPrefix(k, prefix) {
			delete(f.store, k)
		}
	}
	return nil
}

func (f *fakeCache) Increment(_ context.Context, _ string) (int64, error)      { return 0, nil }
func (f *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (f *fakeCache) Publish(_ context.Context, _ string, _ interface{}) error  { return nil }
func (f *fakeCache) Ping(_ context.Context) error                              { return nil }

type fakePublisher struct {
	events []notification.Event
}

func (f *fakePublisher) Publish(_ context.Context, event notification.Event) {
	f.events = append(f.events, event)
}

// ========================================
// HELPERS
// ========================================

func validPayload() model.ReportPayload {
	return model.ReportPayload{
		ReportDate: "2026-08-28",
		Boxes:      10,
		Salles:     decimal.NewFromInt(1000),
		Cost:       decimal.NewFromInt(400),
		Fish:       decimal.NewFromInt(50),
		Ice:        decimal.NewFromInt(20),
		Plastic:    decimal.NewFromInt(10),
		Tape:       decimal.NewFromInt(5),
		IceChest:   decimal.NewFromInt(5),
		Labor:      decimal.NewFromInt(10),
		AirCargo:   decimal.NewFromInt(100),
	}
}

func newTestService(repo *fakeRepo, inv *fakeInventory, c *fakeCache, pub *fakePublisher) ServiceInterface {
	return NewReportService(repo, inv, c, pub)
}

// ========================================
// CREATE
// ========================================

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInventory{}
	pub := &fakePublisher{}
	svc := newTestService(repo, inv, newFakeCache(), pub)

	report, err := svc.Create(context.Background(), uuid.New(), validPayload())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.inserted)
	assert.Equal(t, 1, inv.deductCalls)
	assert.Equal(t, 20, inv.deducted["ice"])
	assert.Equal(t, 5, inv.deducted["ice_chest"])

	// derived fields recomputed server-side
	assert.True(t, report.TotalCost.Equal(decimal.NewFromInt(500)), "total_cost = %s", report.TotalCost)
	assert.True(t, report.SalesPerBox.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.CostPerBox.Equal(decimal.NewFromInt(50)))

	// enriched with the channel split
	assert.Equal(t, 5, report.S3.Boxes)
	assert.Equal(t, 5, report.MSR.Boxes)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notification.EventNewReport, pub.events[0].Type)
}

func TestCreate_ShortfallLeavesNoPartialWrite(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInventory{shortfalls: []inventorymodel.Shortfall{
		{Item: "Ice", Available: 3, Required: 20},
	}}
	pub := &fakePublisher{}
	svc := newTestService(repo, inv, newFakeCache(), pub)

	_, err := svc.Create(context.Background(), uuid.New(), validPayload())

	var insufficient *inventorymodel.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Ice", insufficient.Shortfalls[0].Item)

	assert.Zero(t, repo.inserted)
	assert.Zero(t, inv.deductCalls)
	assert.Empty(t, pub.events)
}

func TestCreate_RejectsNegativeMoney(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeInventory{}, newFakeCache(), &fakePublisher{})

	payload := validPayload()
	payload.Salles = decimal.NewFromInt(-100)
	_, err := svc.Create(context.Background(), uuid.New(), payload)
	assert.Error(t, err)
}

func TestCreate_RequiresReportDate(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeInventory{}, newFakeCache(), &fakePublisher{})

	payload := validPayload()
	payload.ReportDate = ""
	_, err := svc.Create(context.Background(), uuid.New(), payload)
	assert.Error(t, err)
}

// ========================================
// UPDATE
// ========================================

func TestUpdate_RecomputesDerivedAndSkipsDeduction(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInventory{}
	svc := newTestService(repo, inv, newFakeCache(), &fakePublisher{})

	created, err := svc.Create(context.Background(), uuid.New(), validPayload())
	require.NoError(t, err)
	require.Equal(t, 1, inv.deductCalls)

	payload := validPayload()
	payload.Cost = decimal.NewFromInt(900)
	updated, err := svc.Update(context.Background(), created.ID, payload)
	require.NoError(t, err)

	assert.True(t, updated.TotalCost.Equal(decimal.NewFromInt(1000)))
	assert.True(t, updated.CostPerBox.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, inv.deductCalls, "updates must not consume stock again")
}

// ========================================
// LIST & SUMMARY
// ========================================

func TestList_InvalidDateRange(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeInventory{}, newFakeCache(), &fakePublisher{})

	from := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), model.Filter{DateFrom: &from, DateTo: &to})
	assert.ErrorIs(t, err, model.ErrInvalidDateRange)
}

func TestSummary_AggregatesChannels(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeInventory{}, newFakeCache(), &fakePublisher{})

	_, err := svc.Create(context.Background(), uuid.New(), validPayload())
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), model.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ReportCount)
	assert.Equal(t, 10, summary.TotalBoxes)
	assert.Equal(t, 5, summary.S3TotalBoxes)
	assert.Equal(t, 5, summary.MSRTotalBoxes)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.S3TotalSales.Add(summary.MSRTotalSales).Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.NetIncome.Equal(summary.S3NetIncome.Add(summary.MSRNetIncome)))
}

func TestSummary_CachedUntilWrite(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := newTestService(repo, &fakeInventory{}, c, &fakePublisher{})

	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, validPayload())
	require.NoError(t, err)

	first, err := svc.Summary(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ReportCount)
	assert.Len(t, c.store, 1)

	// a second report invalidates the cached aggregate
	payload := validPayload()
	payload.ReportDate = "2026-08-29"
	_, err = svc.Create(context.Background(), userID, payload)
	require.NoError(t, err)
	assert.Empty(t, c.store)

	second, err := svc.Summary(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ReportCount)
}
