package compute

import (
	"context"

	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
)

// Node states reported by providers.
const (
	NodeStatePending    = "pending"
	NodeStateRunning    = "running"
	NodeStateStopped    = "stopped"
	NodeStateSuspended  = "suspended"
	NodeStateTerminated = "terminated"
)

// Node is one compute node as a provider reports it.
type Node struct {
	// ID is the provider-scoped identifier of the node.
	ID string

	// Name is the node's display name.
	Name string

	// Group is the logical group the node was provisioned into.
	Group string

	// State is the node's lifecycle state (running, stopped, etc.)
	State string

	PublicAddrs  []string
	PrivateAddrs []string

	// Tags are the provider-side key/value tags attached to the node.
	Tags map[string]string
}

// Image is one machine image a provider can build nodes from.
type Image struct {
	ID      string
	Name    string
	OS      string
	Version string
}

// Target wraps a node as an addressable unit for higher-level operations.
type Target struct {
	Node Node
}

// ServiceProperties identifies the provider behind a service.
type ServiceProperties struct {
	// Provider is the registry name the service was resolved under.
	Provider string

	// Identity is the account/user the service authenticates as.
	Identity string

	// Endpoint is the provider endpoint in use, when one applies.
	Endpoint string
}

// Service is the base capability every compute provider implements: node
// enumeration, tagging, and identity. Everything beyond it is an optional
// capability the facade discovers per call. The service owns its provider
// connection; callers release it through Close when the Closeable capability
// is present.
type Service interface {
	// Nodes enumerates the provider's current nodes.
	Nodes(ctx context.Context) ([]Node, error)

	// TagNodes attaches tags to the given nodes.
	TagNodes(ctx context.Context, nodeIDs []string, tags map[string]string) error

	// Properties returns the provider identity of this service.
	Properties() ServiceProperties
}

// CreateDestroyer is the optional capability for provisioning and
// terminating nodes and enumerating the images to build them from.
type CreateDestroyer interface {
	Service

	// CreateNodes provisions count nodes matching spec for user. The spec
	// has already passed structural validation when called through the
	// facade.
	CreateNodes(ctx context.Context, spec *v1alpha1.NodeSpec, user string, count int) ([]Node, error)

	// DestroyNodes terminates the given nodes and returns the ids actually
	// destroyed.
	DestroyNodes(ctx context.Context, nodeIDs []string) ([]string, error)

	// Images enumerates the images available for node creation.
	Images(ctx context.Context) ([]Image, error)
}

// Stopper is the optional capability for stopping and restarting nodes.
type Stopper interface {
	Service

	StopNodes(ctx context.Context, nodeIDs []string) error
	RestartNodes(ctx context.Context, nodeIDs []string) error
}

// Suspender is the optional capability for pausing and resuming nodes.
type Suspender interface {
	Service

	SuspendNodes(ctx context.Context, nodeIDs []string) error
	ResumeNodes(ctx context.Context, nodeIDs []string) error
}

// BaseNameMatcher is the optional capability for providers whose node names
// derive deterministically from a base name.
type BaseNameMatcher interface {
	Service

	// MatchesBaseName reports whether nodeName derives from baseName under
	// this provider's naming scheme.
	MatchesBaseName(nodeName string, baseName string) bool
}

// Closeable is the optional capability for providers holding releasable
// resources.
type Closeable interface {
	Service

	Close() error
}
