package transport

import (
	"context"
	"io"
	"io/fs"
)

// Connection is an established session with a single managed node. Closing it
// releases the underlying resources; a Connection is never reused across
// calls.
type Connection interface {
	io.Closer
}

// ExecResult is the outcome of one remote script execution.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// SendOptions carries per-transfer options for SendStream and SendText.
type SendOptions struct {
	// Mode is the file mode the remote file is created with.
	Mode fs.FileMode
}

// Endpoint identifies the node a ConnectionFactory dials and how to
// authenticate against it.
type Endpoint struct {
	Host string
	Port int
	User string

	// Password authenticates when set; PrivateKey (PEM) is tried first when
	// both are present.
	Password   string
	PrivateKey []byte
}

// Transport executes scripts and transfers files over an established
// connection. Implementations report remote command failure through
// ExecResult.ExitCode; the error return is reserved for transport-level
// failure (broken session, unreachable node).
type Transport interface {
	// Exec runs script on the node and returns its exit code and output.
	Exec(ctx context.Context, conn Connection, script string) (ExecResult, error)

	// SendStream streams reader's bytes to remotePath, creating the file
	// with opts.Mode. The full stream is consumed exactly once.
	SendStream(ctx context.Context, conn Connection, reader io.Reader, remotePath string, opts SendOptions) error

	// SendText writes text to remotePath, creating the file with opts.Mode.
	SendText(ctx context.Context, conn Connection, text string, remotePath string, opts SendOptions) error

	// Receive copies remotePath from the node into localPath.
	Receive(ctx context.Context, conn Connection, remotePath string, localPath string) error
}

// ConnectionFactory dials connections to managed nodes.
type ConnectionFactory interface {
	// Connect establishes a connection to the endpoint. The caller owns the
	// returned connection and must close it.
	Connect(ctx context.Context, endpoint Endpoint) (Connection, error)
}
