package graph

import (
	"errors"
	"fmt"
)

// InvalidArgumentError marks an unsatisfiable parameter combination.
// It is always raised before any store round-trip, so a caller seeing it
// knows no query was executed.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

func invalidArgf(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}
