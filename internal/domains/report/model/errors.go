package model

import "errors"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
)
