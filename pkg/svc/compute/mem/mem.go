// Package mem implements an in-memory compute provider with the full
// capability set. It backs development and tests: nodes are plain records,
// lifecycle transitions are instantaneous, and nothing leaves the process.
package mem

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
	"github.com/forklift-io/forklift/pkg/svc/compute"
	"github.com/google/uuid"
)

// ProviderName is the registry name of the in-memory provider.
const ProviderName = "mem"

// DefaultGroup is the group nodes are created into when the spec carries no
// group hint.
const DefaultGroup = "default"

// DefaultImages is the image catalog the in-memory provider reports.
func DefaultImages() []compute.Image {
	return []compute.Image{
		{ID: "ubuntu-22.04", Name: "Ubuntu 22.04 LTS", OS: "ubuntu", Version: "22.04"},
		{ID: "ubuntu-20.04", Name: "Ubuntu 20.04 LTS", OS: "ubuntu", Version: "20.04"},
		{ID: "debian-12", Name: "Debian 12", OS: "debian", Version: "12"},
	}
}

// Service is a full-capability in-memory compute service.
type Service struct {
	identity string

	mu     sync.RWMutex
	nodes  map[string]compute.Node
	serial int
}

// NewService creates an empty in-memory service.
func NewService(identity string) *Service {
	return &Service{identity: identity, nodes: make(map[string]compute.Node)}
}

// Nodes returns all non-terminated nodes.
func (service *Service) Nodes(_ context.Context) ([]compute.Node, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	nodes := make([]compute.Node, 0, len(service.nodes))
	for _, node := range service.nodes {
		node.Tags = maps.Clone(node.Tags)
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// TagNodes attaches tags to the given nodes.
func (service *Service) TagNodes(
	_ context.Context,
	nodeIDs []string,
	tags map[string]string,
) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	for _, id := range nodeIDs {
		node, ok := service.nodes[id]
		if !ok {
			continue
		}

		if node.Tags == nil {
			node.Tags = make(map[string]string, len(tags))
		}

		maps.Copy(node.Tags, tags)
		service.nodes[id] = node
	}

	return nil
}

// Properties returns the provider identity.
func (service *Service) Properties() compute.ServiceProperties {
	return compute.ServiceProperties{
		Provider: ProviderName,
		Identity: service.identity,
	}
}

// CreateNodes provisions count in-memory nodes for user. Node names derive
// from the group base name plus an ordinal, which is what MatchesBaseName
// later checks against.
func (service *Service) CreateNodes(
	_ context.Context,
	spec *v1alpha1.NodeSpec,
	user string,
	count int,
) ([]compute.Node, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: node count must be positive (got %d)",
			v1alpha1.ErrSchemaViolation, count)
	}

	group := DefaultGroup
	if spec != nil && spec.Location != nil && spec.Location.LocationID != "" {
		group = spec.Location.LocationID
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	created := make([]compute.Node, 0, count)
	for range count {
		service.serial++

		node := compute.Node{
			ID:    uuid.NewString(),
			Name:  fmt.Sprintf("%s-%d", group, service.serial),
			Group: group,
			State: compute.NodeStateRunning,
			Tags:  map[string]string{"user": user},
		}

		service.nodes[node.ID] = node
		created = append(created, node)
	}

	return created, nil
}

// DestroyNodes terminates the given nodes and returns the ids it actually
// removed.
func (service *Service) DestroyNodes(_ context.Context, nodeIDs []string) ([]string, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	destroyed := make([]string, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if _, ok := service.nodes[id]; !ok {
			continue
		}

		delete(service.nodes, id)
		destroyed = append(destroyed, id)
	}

	return destroyed, nil
}

// Images returns the static in-memory image catalog.
func (service *Service) Images(_ context.Context) ([]compute.Image, error) {
	return DefaultImages(), nil
}

// StopNodes moves the given nodes to the stopped state.
func (service *Service) StopNodes(_ context.Context, nodeIDs []string) error {
	return service.transition(nodeIDs, compute.NodeStateStopped)
}

// RestartNodes moves the given nodes back to the running state.
func (service *Service) RestartNodes(_ context.Context, nodeIDs []string) error {
	return service.transition(nodeIDs, compute.NodeStateRunning)
}

// SuspendNodes moves the given nodes to the suspended state.
func (service *Service) SuspendNodes(_ context.Context, nodeIDs []string) error {
	return service.transition(nodeIDs, compute.NodeStateSuspended)
}

// ResumeNodes moves the given nodes back to the running state.
func (service *Service) ResumeNodes(_ context.Context, nodeIDs []string) error {
	return service.transition(nodeIDs, compute.NodeStateRunning)
}

// MatchesBaseName reports whether nodeName is baseName plus an ordinal
// suffix, the scheme CreateNodes names nodes under.
func (service *Service) MatchesBaseName(nodeName string, baseName string) bool {
	suffix, ok := strings.CutPrefix(nodeName, baseName+"-")
	if !ok {
		return false
	}

	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}

	return suffix != ""
}

// Close discards all nodes.
func (service *Service) Close() error {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.nodes = make(map[string]compute.Node)

	return nil
}

func (service *Service) transition(nodeIDs []string, state string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	for _, id := range nodeIDs {
		node, ok := service.nodes[id]
		if !ok {
			continue
		}

		node.State = state
		service.nodes[id] = node
	}

	return nil
}
