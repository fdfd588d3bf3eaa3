package domain

import "errors"

// Типизированные ошибки движка. Транспортный слой маппит их на HTTP коды.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotEnrolled  = errors.New("not enrolled")
)
