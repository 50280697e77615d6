package display

import "errors"

// Domain errors for display drivers.
var (
	// ErrInvalidSize indicates non-positive display dimensions.
	ErrInvalidSize = errors.New("display: invalid dimensions")

	// ErrNoDevice indicates the backing hardware or terminal could not be opened.
	ErrNoDevice = errors.New("display: device not available")

	// ErrUnknownKind indicates an unsupported display kind was requested.
	ErrUnknownKind = errors.New("display: unknown display kind")
)
