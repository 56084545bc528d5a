// Package allocation splits one daily report between the two distribution
// channels (S3 and MSR). Pure arithmetic, no I/O: the report service runs it
// on every read and nothing else in the system is allowed to re-derive the
// split.
package allocation

import (
	"github.com/shopspring/decimal"
)

// Per-box freight rates. Business constants agreed with the owner,
// not configurable.
var (
	rateBasZam   = decimal.NewFromInt(350)  // S3: bas-zam leg
	rateT2Market = decimal.NewFromInt(140)  // S3: T2 market leg
	rateMSRFlat  = decimal.NewFromInt(1800) // MSR: flat all-in freight
)

// Input carries the only report fields that participate in the split.
type Input struct {
	Boxes     int
	Salles    decimal.Decimal // gross sales, legacy column name kept
	TotalCost decimal.Decimal
	AirCargo  decimal.Decimal
}

// S3Freight breaks the S3 channel freight into its three legs.
type S3Freight struct {
	BasZam   decimal.Decimal `json:"bas_zam"`
	AirCargo decimal.Decimal `json:"air_cargo"`
	T2Market decimal.Decimal `json:"t2_market"`
}

// S3Channel holds the S3 side of the split.
type S3Channel struct {
	Boxes     int             `json:"boxes"`
	Sales     decimal.Decimal `json:"sales"`
	Cost      decimal.Decimal `json:"cost"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
	Freight   S3Freight       `json:"freight"`
}

// MSRChannel holds the MSR side. Freight is a single flat amount: MSR takes
// no proportional air-cargo share. The asymmetry with S3 is the agreed
// business rule, not an omission.
type MSRChannel struct {
	Boxes     int             `json:"boxes"`
	Sales     decimal.Decimal `json:"sales"`
	Cost      decimal.Decimal `json:"cost"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
	Freight   decimal.Decimal `json:"freight"`
}

// Result is the full two-way split for one report.
type Result struct {
	S3  S3Channel  `json:"s3"`
	MSR MSRChannel `json:"msr"`
}

// Split allocates boxes, sales, cost and freight between S3 and MSR and
// computes each channel's net income.
//
// Box split: S3 gets floor(boxes/2), MSR gets the rest, so an odd box always
// lands on MSR. With zero boxes every monetary field is exactly zero; there
// is no division anywhere in that path.
//
// Guarantees: deterministic, side-effect free, never panics. Negative inputs
// are clamped to zero before computing.
func Split(in Input) Result {
	boxes := in.Boxes
	if boxes < 0 {
		boxes = 0
	}
	salles := clampNonNegative(in.Salles)
	totalCost := clampNonNegative(in.TotalCost)
	airCargo := clampNonNegative(in.AirCargo)

	s3Boxes := boxes / 2
	msrBoxes := boxes - s3Boxes

	var salesPerBox, costPerBox, airCargoPerBox decimal.Decimal
	if boxes > 0 {
		totalBoxes := decimal.NewFromInt(int64(boxes))
		salesPerBox = salles.Div(totalBoxes)
		costPerBox = totalCost.Div(totalBoxes)
		airCargoPerBox = airCargo.Div(totalBoxes)
	}

	s3Qty := decimal.NewFromInt(int64(s3Boxes))
	msrQty := decimal.NewFromInt(int64(msrBoxes))

	// S3: per-box cost share + bas-zam + T2 market + proportional air cargo.
	s3Cost := s3Qty.Mul(costPerBox)
	s3BasZam := rateBasZam.Mul(s3Qty)
	s3T2Market := rateT2Market.Mul(s3Qty)
	s3AirCargo := airCargoPerBox.Mul(s3Qty)
	s3Expenses := s3Cost.Add(s3BasZam).Add(s3T2Market).Add(s3AirCargo)
	s3Sales := s3Qty.Mul(salesPerBox)

	// MSR: per-box cost share + flat freight.
	msrCost := msrQty.Mul(costPerBox)
	msrFreight := rateMSRFlat.Mul(msrQty)
	msrExpenses := msrCost.Add(msrFreight)
	msrSales := msrQty.Mul(salesPerBox)

	return Result{
		S3: S3Channel{
			Boxes:     s3Boxes,
			Sales:     s3Sales,
			Cost:      s3Cost,
			Expenses:  s3Expenses,
			NetIncome: s3Sales.Sub(s3Expenses),
			Freight: S3Freight{
				BasZam:   s3BasZam,
				AirCargo: s3AirCargo,
				T2Market: s3T2Market,
			},
		},
		MSR: MSRChannel{
			Boxes:     msrBoxes,
			Sales:     msrSales,
			Cost:      msrCost,
			Expenses:  msrExpenses,
			NetIncome: msrSales.Sub(msrExpenses),
			Freight:   msrFreight,
		},
	}
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
