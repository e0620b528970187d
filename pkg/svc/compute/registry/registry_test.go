package registry_test

import (
	"errors"
	"testing"

	"github.com/forklift-io/forklift/pkg/svc/compute"
	"github.com/forklift-io/forklift/pkg/svc/compute/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDaemonUnreachable = errors.New("daemon unreachable")

func stubFactory(service compute.Service, err error) registry.Factory {
	return func(_ registry.Options) (compute.Service, error) {
		return service, err
	}
}

func TestResolve_ReturnsServiceFromFactory(t *testing.T) {
	t.Parallel()

	mockService := compute.NewMockService()

	reg := registry.New()
	reg.Register("stub", stubFactory(mockService, nil))

	service, err := reg.Resolve("stub", registry.Options{})
	require.NoError(t, err)
	assert.Same(t, mockService, service)
}

func TestResolve_UnknownNameIsNotKnown(t *testing.T) {
	t.Parallel()

	reg := registry.New()

	service, err := reg.Resolve("ec2", registry.Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, registry.ErrProviderNotFound)
	assert.Nil(t, service)

	var notFound *registry.NotFoundError

	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ec2", notFound.Provider)
	assert.False(t, notFound.Known)
}

func TestResolve_FactoryFailureIsKnown(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Register("docker", stubFactory(nil, errDaemonUnreachable))

	service, err := reg.Resolve("docker", registry.Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, registry.ErrProviderNotFound)
	require.ErrorIs(t, err, errDaemonUnreachable)
	assert.Nil(t, service)

	var notFound *registry.NotFoundError

	require.ErrorAs(t, err, &notFound)
	assert.True(t, notFound.Known)
	assert.Contains(t, notFound.Error(), "failed to load")
}

func TestResolve_FactoryReceivesOptions(t *testing.T) {
	t.Parallel()

	var seen registry.Options

	reg := registry.New()
	reg.Register("spy", func(options registry.Options) (compute.Service, error) {
		seen = options

		return compute.NewMockService(), nil
	})

	options := registry.Options{
		Identity:    "admin",
		Credential:  "secret",
		Endpoint:    "https://api.example.test",
		Environment: map[string]string{"REGION": "eu-1"},
		Extensions:  []string{"spot"},
		SubServices: []string{"dns"},
		Passthrough: map[string]any{"zone": "a"},
	}

	_, err := reg.Resolve("spy", options)
	require.NoError(t, err)
	assert.Equal(t, "admin", seen.Identity)
	assert.Equal(t, "https://api.example.test", seen.Endpoint)
	assert.Equal(t, map[string]string{"REGION": "eu-1"}, seen.Environment)
}

func TestProviders_ReturnsSortedNames(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Register("zeta", stubFactory(compute.NewMockService(), nil))
	reg.Register("alpha", stubFactory(compute.NewMockService(), nil))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.Providers())
}
