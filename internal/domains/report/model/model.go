package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fishtrade-backend/internal/domains/allocation"
	inventorymodel "fishtrade-backend/internal/domains/inventory/model"
)

// Report is one trading day as submitted by a staff member. All money
// columns are NUMERIC; derived columns (total_cost, sales_per_box,
// cost_per_box) are recomputed server-side on every write, the client
// copies are ignored.
type Report struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	ReportDate time.Time `db:"report_date" json:"report_date"`

	Boxes  int             `db:"boxes" json:"boxes"`
	Salles decimal.Decimal `db:"salles" json:"salles"`

	// expense components
	Cost     decimal.Decimal `db:"cost" json:"cost"`
	Fish     decimal.Decimal `db:"fish" json:"fish"`
	IceChest decimal.Decimal `db:"ice_chest" json:"ice_chest"`
	Plastic  decimal.Decimal `db:"plastic" json:"plastic"`
	Tape     decimal.Decimal `db:"tape" json:"tape"`
	Ice      decimal.Decimal `db:"ice" json:"ice"`
	Labor    decimal.Decimal `db:"labor" json:"labor"`
	AirCargo decimal.Decimal `db:"air_cargo" json:"air_cargo"`

	// derived
	TotalCost   decimal.Decimal `db:"total_cost" json:"total_cost"`
	SalesPerBox decimal.Decimal `db:"sales_per_box" json:"sales_per_box"`
	CostPerBox  decimal.Decimal `db:"cost_per_box" json:"cost_per_box"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// joined on reads
	Username string `db:"username" json:"username,omitempty"`
}

// Recompute refreshes the derived columns from the raw inputs.
func (r *Report) Recompute() {
	r.TotalCost = r.Cost.
		Add(r.Fish).
		Add(r.IceChest).
		Add(r.Plastic).
		Add(r.Tape).
		Add(r.Ice).
		Add(r.Labor)

	if r.Boxes > 0 {
		boxes := decimal.NewFromInt(int64(r.Boxes))
		r.SalesPerBox = r.Salles.Div(boxes)
		r.CostPerBox = r.TotalCost.Div(boxes)
	} else {
		r.SalesPerBox = decimal.Zero
		r.CostPerBox = decimal.Zero
	}
}

// Requirements maps the consumable fields to whole-unit stock draws.
// The submitted value doubles as the consumed quantity; fractions are
// truncated.
func (r *Report) Requirements() inventorymodel.Requirements {
	return inventorymodel.Requirements{
		"ice":       int(r.Ice.IntPart()),
		"plastic":   int(r.Plastic.IntPart()),
		"tape":      int(r.Tape.IntPart()),
		"ice_chest": int(r.IceChest.IntPart()),
	}
}

// AllocationInput feeds the channel split engine.
func (r *Report) AllocationInput() allocation.Input {
	return allocation.Input{
		Boxes:     r.Boxes,
		Salles:    r.Salles,
		TotalCost: r.TotalCost,
		AirCargo:  r.AirCargo,
	}
}

// EnrichedReport is the read shape: the stored row plus the channel
// split computed on the fly.
type EnrichedReport struct {
	Report
	S3  allocation.S3Channel  `json:"s3"`
	MSR allocation.MSRChannel `json:"msr"`
}

// Enrich runs the allocation engine over a stored row.
func Enrich(r Report) EnrichedReport {
	result := allocation.Split(r.AllocationInput())
	return EnrichedReport{
		Report: r,
		S3:     result.S3,
		MSR:    result.MSR,
	}
}

// Filter narrows List queries. All fields optional, combined with AND;
// date bounds are inclusive.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	UserID   *uuid.UUID
}

// Summary is the dashboard aggregate over a filtered report set.
type Summary struct {
	ReportCount    int             `json:"report_count"`
	TotalBoxes     int             `json:"total_boxes"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalAirCargo  decimal.Decimal `json:"total_air_cargo"`
	NetIncome      decimal.Decimal `json:"net_income"`
	S3NetIncome    decimal.Decimal `json:"s3_net_income"`
	MSRNetIncome   decimal.Decimal `json:"msr_net_income"`
	S3TotalBoxes   int             `json:"s3_total_boxes"`
	MSRTotalBoxes  int             `json:"msr_total_boxes"`
	S3TotalSales   decimal.Decimal `json:"s3_total_sales"`
	MSRTotalSales  decimal.Decimal `json:"msr_total_sales"`
}
