package user

import "voyager-be/internal/apperr"

var (
	ErrEmailExists        = apperr.New(apperr.Conflict, "User already exists")
	ErrUserNotFound       = apperr.New(apperr.NotFound, "User not found")
	ErrInvalidCredentials = apperr.New(apperr.InvalidCredentials, "Invalid email or password")
	ErrSelfDemote         = apperr.New(apperr.Validation, "Cannot change your own role")
	ErrRoleNotOpen        = apperr.New(apperr.Forbidden, "Only voyager accounts can self-register")

	pgUniqueViolation = "23505"
)
