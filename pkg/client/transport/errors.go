package transport

import "errors"

// ErrTransport is the sentinel every transport-level failure wraps: broken
// connections, failed streams, unreachable nodes. Remote commands that run
// but exit non-zero are not transport failures; they surface through
// ExecResult.ExitCode.
var ErrTransport = errors.New("transport failure")
