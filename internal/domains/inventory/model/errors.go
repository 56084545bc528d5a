package model

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrDuplicateItemName = errors.New("inventory item name already exists")
	ErrNegativeStock     = errors.New("stock cannot go below zero")
	ErrInvalidTxType     = errors.New("invalid transaction type")
)

// InsufficientStockError carries the full shortfall list so the caller
// can report exactly which items block a daily report.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortfalls) == 1 {
		s := e.Shortfalls[0]
		return fmt.Sprintf("insufficient stock: %s has %d, need %d", s.Item, s.Available, s.Required)
	}
	return fmt.Sprintf("insufficient stock for %d items", len(e.Shortfalls))
}
