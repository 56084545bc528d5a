package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	inventorymodel "fishtrade-backend/internal/domains/inventory/model"
	inventoryservice "fishtrade-backend/internal/domains/inventory/service"
	"fishtrade-backend/internal/domains/notification"
	"fishtrade-backend/internal/domains/report/model"
	"fishtrade-backend/internal/domains/report/repository"
	"fishtrade-backend/pkg/cache"
	"fishtrade-backend/pkg/logger"
)

const (
	summaryCachePrefix = "reports:summary:"
	summaryCacheTTL    = 5 * time.Minute
)

type reportService struct {
	repo      repository.Repository
	inventory inventoryservice.ServiceInterface
	cache     cache.Cache
	publisher notification.Publisher
}

// NewReportService wires the service with its collaborators.
func NewReportService(
	repo repository.Repository,
	inventory inventoryservice.ServiceInterface,
	c cache.Cache,
	publisher notification.Publisher,
) ServiceInterface {
	return &reportService{
		repo:      repo,
		inventory: inventory,
		cache:     c,
		publisher: publisher,
	}
}

// Create inserts a report and draws down consumable stock in one
// database transaction. A shortfall on any item rolls everything back,
// so a rejected report never leaves a partial write behind.
func (s *reportService) Create(ctx context.Context, userID uuid.UUID, payload model.ReportPayload) (*model.EnrichedReport, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	report, err := payload.ToReport(userID)
	if err != nil {
		return nil, err
	}

	requirements := report.Requirements()
	err = s.repo.WithinTransaction(ctx, func(tx pgx.Tx) error {
		shortfalls, err := s.inventory.CheckAvailability(ctx, tx, requirements)
		if err != nil {
			return err
		}
		if len(shortfalls) > 0 {
			return &inventorymodel.InsufficientStockError{Shortfalls: shortfalls}
		}

		if err := s.repo.InsertTx(ctx, tx, report); err != nil {
			return err
		}

		return s.inventory.Deduct(ctx, tx, requirements, &userID, report.ReportDate)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)

	enriched := model.Enrich(*report)
	s.publisher.Publish(ctx, notification.Event{
		Type:    notification.EventNewReport,
		Title:   "New daily report",
		Message: fmt.Sprintf("Report for %s submitted", report.ReportDate.Format("2006-01-02")),
		Data: map[string]interface{}{
			"report_id":   report.ID.String(),
			"report_date": report.ReportDate.Format("2006-01-02"),
			"boxes":       report.Boxes,
		},
		Audience: notification.AudienceAll,
	})

	return &enriched, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*model.EnrichedReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched := model.Enrich(*report)
	return &enriched, nil
}

// Update rewrites the row with server-side recomputed derived columns.
// Stock is only consumed at creation time; edits never re-deduct.
func (s *reportService) Update(ctx context.Context, id uuid.UUID, payload model.ReportPayload) (*model.EnrichedReport, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := payload.ToReport(existing.UserID)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Username = existing.Username

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)

	enriched := model.Enrich(*updated)
	return &enriched, nil
}

func (s *reportService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}

func (s *reportService) List(ctx context.Context, filter model.Filter) ([]model.EnrichedReport, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, model.ErrInvalidDateRange
	}

	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedReport, 0, len(reports))
	for _, r := range reports {
		enriched = append(enriched, model.Enrich(r))
	}
	return enriched, nil
}

// Summary aggregates a filtered report set, running the channel split
// per row. Results sit in Redis for a few minutes; any write drops them.
func (s *reportService) Summary(ctx context.Context, filter model.Filter) (*model.Summary, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, model.ErrInvalidDateRange
	}

	key := summaryCacheKey(filter)
	var cached model.Summary
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(reports)

	if err := s.cache.Set(ctx, key, summary, summaryCacheTTL); err != nil {
		logger.Error("failed to cache report summary", err)
	}
	return summary, nil
}

func buildSummary(reports []model.Report) *model.Summary {
	summary := &model.Summary{
		ReportCount:   len(reports),
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalAirCargo: decimal.Zero,
		NetIncome:     decimal.Zero,
		S3NetIncome:   decimal.Zero,
		MSRNetIncome:  decimal.Zero,
		S3TotalSales:  decimal.Zero,
		MSRTotalSales: decimal.Zero,
	}

	for _, r := range reports {
		enriched := model.Enrich(r)

		summary.TotalBoxes += r.Boxes
		summary.TotalSales = summary.TotalSales.Add(r.Salles)
		summary.TotalAirCargo = summary.TotalAirCargo.Add(r.AirCargo)

		expenses := enriched.S3.Expenses.Add(enriched.MSR.Expenses)
		summary.TotalExpenses = summary.TotalExpenses.Add(expenses)

		summary.S3TotalBoxes += enriched.S3.Boxes
		summary.MSRTotalBoxes += enriched.MSR.Boxes
		summary.S3TotalSales = summary.S3TotalSales.Add(enriched.S3.Sales)
		summary.MSRTotalSales = summary.MSRTotalSales.Add(enriched.MSR.Sales)
		summary.S3NetIncome = summary.S3NetIncome.Add(enriched.S3.NetIncome)
		summary.MSRNetIncome = summary.MSRNetIncome.Add(enriched.MSR.NetIncome)
	}

	summary.NetIncome = summary.S3NetIncome.Add(summary.MSRNetIncome)
	return summary
}

func summaryCacheKey(filter model.Filter) string {
	from, to, userID := "-", "-", "-"
	if filter.DateFrom != nil {
		from = filter.DateFrom.Format("2006-01-02")
	}
	if filter.DateTo != nil {
		to = filter.DateTo.Format("2006-01-02")
	}
	if filter.UserID != nil {
		userID = filter.UserID.String()
	}
	return fmt.Sprintf("%s%s:%s:%s", summaryCachePrefix, from, to, userID)
}

func (s *reportService) invalidateSummaries(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, summaryCachePrefix+"*"); err != nil {
		logger.Error("failed to invalidate summary cache", err)
	}
}
