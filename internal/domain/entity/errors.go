package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the base of every validation failure; callers map it
// to a 4xx response with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrDriverIDRequired    = fmt.Errorf("%w: driver id is required", ErrInvalidArgument)
	ErrLatitudeOutOfRange  = fmt.Errorf("%w: latitude must be within [-90, 90]", ErrInvalidArgument)
	ErrLongitudeOutOfRange = fmt.Errorf("%w: longitude must be within [-180, 180]", ErrInvalidArgument)
	ErrCoordinateNotFinite = fmt.Errorf("%w: coordinate must be a finite number", ErrInvalidArgument)
	ErrLimitMustBePos      = fmt.Errorf("%w: limit must be greater than zero", ErrInvalidArgument)
)

var (
	// ErrDriverNotFound marks a query for a driver id with no tracked record.
	ErrDriverNotFound = errors.New("driver location not found")

	// ErrStoreUnavailable marks a backing-store connectivity failure. It is
	// never retried internally; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("location store unavailable")
)
