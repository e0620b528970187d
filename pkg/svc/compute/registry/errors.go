package registry

import (
	"errors"
	"fmt"
)

// ErrProviderNotFound is the sentinel every resolution miss wraps. Match with
// errors.Is, or errors.As against *NotFoundError to distinguish an unknown
// name from a recognized backend that failed to load.
var ErrProviderNotFound = errors.New("provider not found")

// NotFoundError reports a registry resolution miss.
type NotFoundError struct {
	// Provider is the name that failed to resolve.
	Provider string

	// Known is true when the name is registered but its factory failed
	// (usually a missing optional backend dependency), and false when the
	// name was never registered at all.
	Known bool

	// Err is the factory's failure when Known is true.
	Err error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Known {
		return fmt.Sprintf(
			"provider %q is recognized but failed to load (missing optional backend?): %v",
			e.Provider, e.Err,
		)
	}

	return fmt.Sprintf("provider %q is not registered", e.Provider)
}

// Unwrap ties the typed error to ErrProviderNotFound and the factory cause.
func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrProviderNotFound, e.Err}
	}

	return []error{ErrProviderNotFound}
}
