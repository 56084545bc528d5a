package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fishtrade-backend/internal/domains/report/model"
)

// Repository is the persistence contract for daily reports.
type Repository interface {
	// WithinTransaction runs fn in one database transaction. The report
	// service uses it to make the availability check, the insert and
	// the stock deduction a single atomic step.
	WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) error

	InsertTx(ctx context.Context, tx pgx.Tx, report *model.Report) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.Filter) ([]model.Report, error)
}
