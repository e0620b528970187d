// Package providers wires the in-tree compute providers into a registry.
//
// It lives apart from the registry package so provider factories can accept
// registry.Options without an import cycle. External provider plugins follow
// the same shape: implement a registry.Factory and register it at startup.
package providers

import (
	"context"

	"github.com/forklift-io/forklift/pkg/svc/compute"
	computedocker "github.com/forklift-io/forklift/pkg/svc/compute/docker"
	"github.com/forklift-io/forklift/pkg/svc/compute/mem"
	"github.com/forklift-io/forklift/pkg/svc/compute/nodelist"
	"github.com/forklift-io/forklift/pkg/svc/compute/registry"
)

// NewDefaultRegistry creates a registry with every in-tree provider
// registered: nodelist, mem, and docker.
func NewDefaultRegistry() *registry.Registry {
	reg := registry.New()
	RegisterAll(reg)

	return reg
}

// RegisterAll registers the in-tree providers on an existing registry.
func RegisterAll(reg *registry.Registry) {
	reg.Register(nodelist.ProviderName, NodeListFactory)
	reg.Register(mem.ProviderName, MemFactory)
	reg.Register(computedocker.ProviderName, DockerFactory)
}

// NodeListFactory builds the static node-list provider from
// options.Nodes.
func NodeListFactory(options registry.Options) (compute.Service, error) {
	return nodelist.NewService(options.Nodes, options.Identity), nil
}

// MemFactory builds the in-memory provider.
func MemFactory(options registry.Options) (compute.Service, error) {
	return mem.NewService(options.Identity), nil
}

// DockerFactory builds the Docker provider. It fails when the daemon is
// unreachable, which the registry reports as a recognized-but-failed-to-load
// resolution.
func DockerFactory(options registry.Options) (compute.Service, error) {
	apiClient, err := computedocker.NewDefaultClient(context.Background())
	if err != nil {
		return nil, err
	}

	return computedocker.NewService(apiClient, options.Identity), nil
}
