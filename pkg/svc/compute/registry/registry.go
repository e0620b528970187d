// Package registry resolves provider names to compute services.
//
// Providers register a factory under a name at startup; callers resolve a
// (name, options) pair to a live Service. A resolution miss is classified:
// an unknown name is a different failure from a recognized name whose
// backend failed to load (commonly a missing optional dependency such as an
// unreachable daemon), and the returned NotFoundError says which.
package registry

import (
	"sort"
	"sync"

	"github.com/forklift-io/forklift/pkg/svc/compute"
	"github.com/sirupsen/logrus"
)

// Options is the flat option set a provider factory accepts. Factories
// consume what they understand and ignore the rest; provider-specific keys
// travel in Passthrough.
type Options struct {
	// Identity is the account or user to authenticate as.
	Identity string

	// Credential is the secret paired with Identity.
	Credential string

	// Endpoint overrides the provider's default API endpoint.
	Endpoint string

	// Environment carries environment values for the provider.
	Environment map[string]string

	// Extensions names optional provider extensions to enable.
	Extensions []string

	// Nodes is the static node list for providers built from one.
	Nodes []compute.Node

	// SubServices names auxiliary services the provider should wire in.
	SubServices []string

	// Passthrough carries provider-specific options untouched.
	Passthrough map[string]any

	// Logger receives structured resolution and provider logs. Nil means
	// the logrus standard logger.
	Logger *logrus.Logger
}

// Log returns the configured logger or the logrus standard logger.
func (options Options) Log() *logrus.Logger {
	if options.Logger != nil {
		return options.Logger
	}

	return logrus.StandardLogger()
}

// Factory constructs a compute service from options.
type Factory func(options Options) (compute.Service, error)

// Registry maps provider names to factories. The zero value is not usable;
// create one with New. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous registration.
func (registry *Registry) Register(name string, factory Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.factories[name] = factory
}

// Providers returns the registered provider names, sorted.
func (registry *Registry) Providers() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Resolve looks up name and constructs a service from options. A miss yields
// a NotFoundError: Known=false when the name was never registered, Known=true
// when the factory exists but failed to build the backend.
func (registry *Registry) Resolve(name string, options Options) (compute.Service, error) {
	registry.mu.RLock()
	factory, ok := registry.factories[name]
	registry.mu.RUnlock()

	logger := options.Log()

	if !ok {
		logger.WithFields(logrus.Fields{
			"provider":   name,
			"registered": registry.Providers(),
		}).Debug("provider name not registered")

		return nil, &NotFoundError{Provider: name, Known: false}
	}

	service, err := factory(options)
	if err != nil {
		logger.WithField("provider", name).WithError(err).Debug("provider failed to load")

		return nil, &NotFoundError{Provider: name, Known: true, Err: err}
	}

	logger.WithField("provider", name).Debug("provider resolved")

	return service, nil
}
