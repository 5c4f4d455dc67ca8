package order

import "voyager-be/internal/apperr"

var (
	ErrOrderNotFound     = apperr.New(apperr.NotFound, "Order not found")
	ErrInvalidTransition = apperr.New(apperr.InvalidTransition, "Invalid status transition")
	ErrStatusConflict    = apperr.New(apperr.Conflict, "Order status was changed by someone else; reload and retry")
	ErrInvalidStatus     = apperr.New(apperr.Validation, "Unknown order status")
	ErrInvalidType       = apperr.New(apperr.Validation, "type must be catering or stationery")
	ErrNoItems           = apperr.New(apperr.Validation, "Order must contain at least one item")
	ErrTotalMismatch     = apperr.New(apperr.Validation, "totalAmount does not match the catalog prices")
)
