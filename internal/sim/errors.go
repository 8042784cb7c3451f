package sim

import "errors"

var (
	ErrUnknownVariant = errors.New("sim: unknown variant")
	ErrUnknownMode    = errors.New("sim: unknown display mode")
	ErrInvalidBounds  = errors.New("sim: surface bounds must be positive")
)
