// Package nodelist implements the static node-list provider: a read-only
// compute service wrapped around nodes the caller already has (bare metal,
// hand-provisioned VMs). It carries the base capability only, so every
// lifecycle operation against it fails the facade's capability check. That is
// the point: the nodes are not this toolkit's to create or destroy.
package nodelist

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/forklift-io/forklift/pkg/svc/compute"
)

// ProviderName is the registry name of the static node-list provider.
const ProviderName = "nodelist"

// Service is a base-capability compute service over a fixed node list. Tags
// are kept as an in-memory overlay; the underlying list never changes.
type Service struct {
	identity string

	mu    sync.RWMutex
	nodes []compute.Node
}

// NewService creates a static node-list service over the given nodes.
func NewService(nodes []compute.Node, identity string) *Service {
	owned := make([]compute.Node, len(nodes))
	for i, node := range nodes {
		owned[i] = node
		owned[i].Tags = maps.Clone(node.Tags)
	}

	return &Service{identity: identity, nodes: owned}
}

// Nodes returns the static node list.
func (service *Service) Nodes(_ context.Context) ([]compute.Node, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	nodes := make([]compute.Node, len(service.nodes))
	for i, node := range service.nodes {
		nodes[i] = node
		nodes[i].Tags = maps.Clone(node.Tags)
	}

	return nodes, nil
}

// TagNodes records tags in the in-memory overlay for the matching nodes.
// Unknown ids are ignored.
func (service *Service) TagNodes(
	_ context.Context,
	nodeIDs []string,
	tags map[string]string,
) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	for i := range service.nodes {
		if !slices.Contains(nodeIDs, service.nodes[i].ID) {
			continue
		}

		if service.nodes[i].Tags == nil {
			service.nodes[i].Tags = make(map[string]string, len(tags))
		}

		maps.Copy(service.nodes[i].Tags, tags)
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
