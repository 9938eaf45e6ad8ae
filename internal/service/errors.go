package service

import "errors"

// Error kinds surfaced by every service. Handlers classify with errors.Is
// and map to HTTP statuses; nothing here is retried internally.
var (
	ErrValidation = errors.New("validation")
	ErrConflict   = errors.New("conflict")
	ErrEmptyCart  = errors.New("empty cart")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
