package database

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable signals that the database could not be reached or
// returned something unusable. Callers must treat it as "unknown", never as
// "zero records"; handlers map it to a 503.
var ErrDataUnavailable = errors.New("data unavailable")

// ErrInvalidTransition is returned when a status change is requested on a
// payment that is no longer pending.
var ErrInvalidTransition = errors.New("payment is not pending")

func dataUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrDataUnavailable)
}
