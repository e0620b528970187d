package compute

import (
	"context"

	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of the Service interface and every
// optional capability, for testing.
type MockService struct {
	mock.Mock
}

// NewMockService creates a new MockService instance.
func NewMockService() *MockService {
	return &MockService{}
}

// Nodes mocks enumerating nodes.
func (m *MockService) Nodes(ctx context.Context) ([]Node, error) {
	args := m.Called(ctx)

	result, ok := args.Get(0).([]Node)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// TagNodes mocks attaching tags to nodes.
func (m *MockService) TagNodes(
	ctx context.Context,
	nodeIDs []string,
	tags map[string]string,
) error {
	args := m.Called(ctx, nodeIDs, tags)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Properties mocks returning the provider identity.
func (m *MockService) Properties() ServiceProperties {
	args := m.Called()

	result, ok := args.Get(0).(ServiceProperties)
	if !ok {
		return ServiceProperties{}
	}

	return result
}

// CreateNodes mocks provisioning nodes.
func (m *MockService) CreateNodes(
	ctx context.Context,
	spec *v1alpha1.NodeSpec,
	user string,
	count int,
) ([]Node, error) {
	args := m.Called(ctx, spec, user, count)

	result, ok := args.Get(0).([]Node)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// DestroyNodes mocks terminating nodes.
func (m *MockService) DestroyNodes(ctx context.Context, nodeIDs []string) ([]string, error) {
	args := m.Called(ctx, nodeIDs)

	result, ok := args.Get(0).([]string)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Images mocks enumerating available images.
func (m *MockService) Images(ctx context.Context) ([]Image, error) {
	args := m.Called(ctx)

	result, ok := args.Get(0).([]Image)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// StopNodes mocks stopping nodes.
func (m *MockService) StopNodes(ctx context.Context, nodeIDs []string) error {
	args := m.Called(ctx, nodeIDs)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// RestartNodes mocks restarting nodes.
func (m *MockService) RestartNodes(ctx context.Context, nodeIDs []string) error {
	args := m.Called(ctx, nodeIDs)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// SuspendNodes mocks pausing nodes.
func (m *MockService) SuspendNodes(ctx context.Context, nodeIDs []string) error {
	args := m.Called(ctx, nodeIDs)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// ResumeNodes mocks resuming nodes.
func (m *MockService) ResumeNodes(ctx context.Context, nodeIDs []string) error {
	args := m.Called(ctx, nodeIDs)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// MatchesBaseName mocks the base-name predicate.
func (m *MockService) MatchesBaseName(nodeName string, baseName string) bool {
	args := m.Called(nodeName, baseName)

	return args.Bool(0)
}

// Close mocks releasing provider resources.
func (m *MockService) Close() error {
	args := m.Called()

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}
