package uploader

import (
	"errors"
	"fmt"
)

// ErrUploadFailed is the sentinel every fatal upload failure wraps.
var ErrUploadFailed = errors.New("upload failed")

// ErrUnknownStrategy is returned when New is asked for an unregistered
// upload strategy.
var ErrUnknownStrategy = errors.New("unknown upload strategy")

// UploadFailedError reports a remote command that exited non-zero during an
// upload, typically directory creation. A transfer is never attempted after
// a failed directory creation.
type UploadFailedError struct {
	// ExitCode is the remote command's exit status.
	ExitCode int

	// Output is the command's combined output, for diagnosis.
	Output string
}

// Error implements the error interface.
func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("remote command exited %d: %s", e.ExitCode, e.Output)
}

// Unwrap ties the typed error to the ErrUploadFailed sentinel.
func (e *UploadFailedError) Unwrap() error {
	return ErrUploadFailed
}
