package booking

import "voyager-be/internal/apperr"

var (
	ErrBookingNotFound   = apperr.New(apperr.NotFound, "Booking not found")
	ErrInvalidService    = apperr.New(apperr.Validation, "service must be one of movie, salon, fitness, party")
	ErrInvalidStatus     = apperr.New(apperr.Validation, "Unknown booking status")
	ErrInvalidTransition = apperr.New(apperr.InvalidTransition, "Invalid status transition")
	ErrStatusConflict    = apperr.New(apperr.Conflict, "Booking status was changed by someone else; reload and retry")
	ErrDateNotInFuture   = apperr.New(apperr.Validation, "bookingDate must be in the future")
	ErrPriceMismatch     = apperr.New(apperr.Validation, "price does not match the service price")
)
