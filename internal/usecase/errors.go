package usecase

import "errors"

// Failure classes surfaced across the operation boundary. Handlers map these
// to HTTP statuses; anything unwrapped is reported generically.
var (
	ErrUnauthorized       = errors.New("unauthorized: user not logged in")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid request")
	ErrConflict           = errors.New("already exists")
	ErrInvalidModelOutput = errors.New("invalid model output")
	ErrSaveFailed         = errors.New("save failed")
)
