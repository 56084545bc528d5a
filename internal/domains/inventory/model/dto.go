package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

type CreateItemRequest struct {
	ItemName     string          `json:"item_name"`
	CurrentStock int             `json:"current_stock"`
	MinThreshold int             `json:"min_threshold"`
	Unit         string          `json:"unit"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemName,
			validation.Required.Error("item name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.CurrentStock,
			validation.Min(0).Error("stock cannot be negative"),
		),
		validation.Field(&r.MinThreshold,
			validation.Min(0).Error("threshold cannot be negative"),
		),
		validation.Field(&r.Unit,
			validation.Required.Error("unit is required"),
			validation.Length(1, 30),
		),
		validation.Field(&r.CostPerUnit,
			validation.By(nonNegativeDecimal),
		),
	)
}

// UpdateItemRequest uses pointers so callers change only what they send.
type UpdateItemRequest struct {
	ItemName     *string          `json:"item_name"`
	CurrentStock *int             `json:"current_stock"`
	MinThreshold *int             `json:"min_threshold"`
	Unit         *string          `json:"unit"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemName,
			validation.NilOrNotEmpty.Error("item name cannot be empty"),
			validation.Length(1, 100),
		),
		validation.Field(&r.CurrentStock,
			validation.Min(0).Error("stock cannot be negative"),
		),
		validation.Field(&r.MinThreshold,
			validation.Min(0).Error("threshold cannot be negative"),
		),
		validation.Field(&r.Unit,
			validation.Length(1, 30),
		),
		validation.Field(&r.CostPerUnit,
			validation.By(nonNegativeDecimalPtr),
		),
	)
}

// AdjustStockRequest changes stock by a signed delta and records why.
type AdjustStockRequest struct {
	Change int    `json:"change"`
	Notes  string `json:"notes"`
}

func (r AdjustStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Change,
			validation.Required.Error("change is required and cannot be zero"),
		),
		validation.Field(&r.Notes,
			validation.Length(0, 500),
		),
	)
}

func nonNegativeDecimal(v interface{}) error {
	d, ok := v.(decimal.Decimal)
	if ok && d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}

func nonNegativeDecimalPtr(v interface{}) error {
	d, ok := v.(*decimal.Decimal)
	if ok && d != nil && d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}
