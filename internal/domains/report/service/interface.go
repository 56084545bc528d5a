package service

import (
	"context"

	"github.com/google/uuid"

	"fishtrade-backend/internal/domains/report/model"
)

// ServiceInterface is the business contract for daily reports. Reads
// always return the enriched shape; the allocation engine never leaks
// to callers directly.
type ServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, payload model.ReportPayload) (*model.EnrichedReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.EnrichedReport, error)
	Update(ctx context.Context, id uuid.UUID, payload model.ReportPayload) (*model.EnrichedReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.Filter) ([]model.EnrichedReport, error)
	Summary(ctx context.Context, filter model.Filter) (*model.Summary, error)
}
