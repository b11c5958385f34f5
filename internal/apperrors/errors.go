package apperrors

import "errors"

// Sentinel error kinds returned by the service layer. Services wrap these with
// fmt.Errorf("...: %w", Err...) and handlers map them to HTTP statuses with
// errors.Is: ErrValidation to 400, ErrUnauthorized to 401, ErrNotFound to 404;
// everything else is a generic 500 so internal details never drive the
// client-facing contract.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)
