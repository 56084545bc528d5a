package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReportPayload is the write shape shared by create and update. Every
// numeric field must be an actual number in the JSON body; malformed
// values are rejected up front instead of silently coerced to zero.
type ReportPayload struct {
	ReportDate string          `json:"report_date"`
	Boxes      int             `json:"boxes"`
	Salles     decimal.Decimal `json:"salles"`
	Cost       decimal.Decimal `json:"cost"`
	Fish       decimal.Decimal `json:"fish"`
	IceChest   decimal.Decimal `json:"ice_chest"`
	Plastic    decimal.Decimal `json:"plastic"`
	Tape       decimal.Decimal `json:"tape"`
	Ice        decimal.Decimal `json:"ice"`
	Labor      decimal.Decimal `json:"labor"`
	AirCargo   decimal.Decimal `json:"air_cargo"`
}

func (r ReportPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReportDate,
			validation.Required.Error("report date is required"),
			validation.Date(dateLayout).Error("report date must be YYYY-MM-DD"),
		),
		validation.Field(&r.Boxes,
			validation.Min(0).Error("boxes cannot be negative"),
		),
		validation.Field(&r.Salles, validation.By(nonNegative)),
		validation.Field(&r.Cost, validation.By(nonNegative)),
		validation.Field(&r.Fish, validation.By(nonNegative)),
		validation.Field(&r.IceChest, validation.By(nonNegative)),
		validation.Field(&r.Plastic, validation.By(nonNegative)),
		validation.Field(&r.Tape, validation.By(nonNegative)),
		validation.Field(&r.Ice, validation.By(nonNegative)),
		validation.Field(&r.Labor, validation.By(nonNegative)),
		validation.Field(&r.AirCargo, validation.By(nonNegative)),
	)
}

// ToReport builds the entity; derived columns are filled by Recompute.
func (r ReportPayload) ToReport(userID uuid.UUID) (*Report, error) {
	date, err := time.Parse(dateLayout, r.ReportDate)
	if err != nil {
		return nil, err
	}

	report := &Report{
		UserID:     userID,
		ReportDate: date,
		Boxes:      r.Boxes,
		Salles:     r.Salles,
		Cost:       r.Cost,
		Fish:       r.Fish,
		IceChest:   r.IceChest,
		Plastic:    r.Plastic,
		Tape:       r.Tape,
		Ice:        r.Ice,
		Labor:      r.Labor,
		AirCargo:   r.AirCargo,
	}
	report.Recompute()
	return report, nil
}

func nonNegative(v interface{}) error {
	d, ok := v.(decimal.Decimal)
	if ok && d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}
