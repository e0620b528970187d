package transport

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockConnection is a mock implementation of the Connection interface for testing.
type MockConnection struct {
	mock.Mock
}

// NewMockConnection creates a new MockConnection instance.
func NewMockConnection() *MockConnection {
	return &MockConnection{}
}

// Close mocks releasing the connection.
func (m *MockConnection) Close() error {
	args := m.Called()

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// MockTransport is a mock implementation of the Transport interface for testing.
type MockTransport struct {
	mock.Mock
}

// NewMockTransport creates a new MockTransport instance.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Exec mocks running a remote script.
func (m *MockTransport) Exec(
	ctx context.Context,
	conn Connection,
	script string,
) (ExecResult, error) {
	args := m.Called(ctx, conn, script)

	result, ok := args.Get(0).(ExecResult)
	if !ok {
		return ExecResult{}, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// SendStream mocks streaming bytes to a remote path.
func (m *MockTransport) SendStream(
	ctx context.Context,
	conn Connection,
	reader io.Reader,
	remotePath string,
	opts SendOptions,
) error {
	args := m.Called(ctx, conn, reader, remotePath, opts)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// SendText mocks writing text to a remote path.
func (m *MockTransport) SendText(
	ctx context.Context,
	conn Connection,
	text string,
	remotePath string,
	opts SendOptions,
) error {
	args := m.Called(ctx, conn, text, remotePath, opts)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Receive mocks copying a remote file to a local path.
func (m *MockTransport) Receive(
	ctx context.Context,
	conn Connection,
	remotePath string,
	localPath string,
) error {
	args := m.Called(ctx, conn, remotePath, localPath)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// MockConnectionFactory is a mock implementation of the ConnectionFactory
// interface for testing.
type MockConnectionFactory struct {
	mock.Mock
}

// NewMockConnectionFactory creates a new MockConnectionFactory instance.
func NewMockConnectionFactory() *MockConnectionFactory {
	return &MockConnectionFactory{}
}

// Connect mocks dialing a node.
func (m *MockConnectionFactory) Connect(
	ctx context.Context,
	endpoint Endpoint,
) (Connection, error) {
	args := m.Called(ctx, endpoint)

	conn, ok := args.Get(0).(Connection)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return conn, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
