package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fishtrade-backend/internal/domains/report/model"
	"fishtrade-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the pgx-backed report repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const reportColumns = `
	r.id, r.user_id, r.report_date, r.boxes, r.salles,
	r.cost, r.fish, r.ice_chest, r.plastic, r.tape, r.ice, r.labor, r.air_cargo,
	r.total_cost, r.sales_per_box, r.cost_per_box,
	r.created_at, r.updated_at, u.username`

func (r *postgresRepository) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return database.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) InsertTx(ctx context.Context, tx pgx.Tx, report *model.Report) error {
	query := `
		INSERT INTO daily_reports
			(user_id, report_date, boxes, salles,
			 cost, fish, ice_chest, plastic, tape, ice, labor, air_cargo,
			 total_cost, sales_per_box, cost_per_box)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		report.UserID, report.ReportDate, report.Boxes, report.Salles,
		report.Cost, report.Fish, report.IceChest, report.Plastic,
		report.Tape, report.Ice, report.Labor, report.AirCargo,
		report.TotalCost, report.SalesPerBox, report.CostPerBox,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_reports r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`, reportColumns)

	var report model.Report
	if err := scanReport(r.pool.QueryRow(ctx, query, id), &report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *postgresRepository) Update(ctx context.Context, report *model.Report) error {
	query := `
		UPDATE daily_reports
		SET report_date = $2, boxes = $3, salles = $4,
		    cost = $5, fish = $6, ice_chest = $7, plastic = $8,
		    tape = $9, ice = $10, labor = $11, air_cargo = $12,
		    total_cost = $13, sales_per_box = $14, cost_per_box = $15,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		report.ID, report.ReportDate, report.Boxes, report.Salles,
		report.Cost, report.Fish, report.IceChest, report.Plastic,
		report.Tape, report.Ice, report.Labor, report.AirCargo,
		report.TotalCost, report.SalesPerBox, report.CostPerBox,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReportNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM daily_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReportNotFound
	}
	return nil
}

// List applies the optional filters with AND semantics; date bounds
// are inclusive, newest report first.
func (r *postgresRepository) List(ctx context.Context, filter model.Filter) ([]model.Report, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_reports r
		JOIN users u ON u.id = r.user_id
		WHERE ($1::date IS NULL OR r.report_date >= $1)
		  AND ($2::date IS NULL OR r.report_date <= $2)
		  AND ($3::uuid IS NULL OR r.user_id = $3)
		ORDER BY r.report_date DESC, r.created_at DESC`, reportColumns)

	rows, err := r.pool.Query(ctx, query, filter.DateFrom, filter.DateTo, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0)
	for rows.Next() {
		var report model.Report
		if err := scanReport(rows, &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func scanReport(row pgx.Row, report *model.Report) error {
	err := row.Scan(
		&report.ID, &report.UserID, &report.ReportDate, &report.Boxes, &report.Salles,
		&report.Cost, &report.Fish, &report.IceChest, &report.Plastic,
		&report.Tape, &report.Ice, &report.Labor, &report.AirCargo,
		&report.TotalCost, &report.SalesPerBox, &report.CostPerBox,
		&report.CreatedAt, &report.UpdatedAt, &report.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return fmt.Errorf("failed to scan report: %w", err)
	}
	return nil
}
