package menu

import "voyager-be/internal/apperr"

var (
	ErrItemNotFound    = apperr.New(apperr.NotFound, "Menu item not found")
	ErrInvalidCategory = apperr.New(apperr.Validation, "category must be catering or stationery")
	ErrInvalidPrice    = apperr.New(apperr.Validation, "price must be a non-negative number")
	ErrItemInUse       = apperr.New(apperr.Conflict, "Menu item is referenced by existing orders")

	pgForeignKeyViolation = "23503"
)
