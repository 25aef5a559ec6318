package services

import "errors"

// Sentinel errors handlers translate into HTTP responses. Validation errors
// abort the operation with state unchanged; storage failures propagate as-is
// and are fatal to the triggering operation.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrRecoveryMismatch   = errors.New("email and recovery hint do not match")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrValidation         = errors.New("validation failed")
)
