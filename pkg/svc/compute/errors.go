package compute

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperation is the sentinel every capability miss wraps. Match
// with errors.Is, or errors.As against *UnsupportedOperationError for the
// service and operation names.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Facade operation names carried in UnsupportedOperationError.
const (
	OpNodes           = "nodes"
	OpTargets         = "targets"
	OpCreateNodes     = "createNodes"
	OpDestroyNodes    = "destroyNodes"
	OpImages          = "images"
	OpRestartNodes    = "restartNodes"
	OpStopNodes       = "stopNodes"
	OpSuspendNodes    = "suspendNodes"
	OpResumeNodes     = "resumeNodes"
	OpTagNodes        = "tagNodes"
	OpMatchesBaseName = "matchesBaseName"
	OpClose           = "close"
)

// UnsupportedOperationError reports a facade operation invoked against a
// service lacking the required capability. It is raised before any remote
// contact.
type UnsupportedOperationError struct {
	// Service is the provider name of the service the call was made against.
	Service string

	// Operation is the facade operation that was attempted.
	Operation string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf(
		"unsupported operation %q on provider %q",
		e.Operation, e.Service,
	)
}

// Unwrap ties the typed error to the ErrUnsupportedOperation sentinel.
func (e *UnsupportedOperationError) Unwrap() error {
	return ErrUnsupportedOperation
}

func unsupported(service Service, operation string) error {
	name := "unknown"
	if service != nil {
		name = service.Properties().Provider
	}

	return &UnsupportedOperationError{Service: name, Operation: operation}
}
