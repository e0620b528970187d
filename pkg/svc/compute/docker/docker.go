// Package docker implements a compute provider backed by the local Docker
// daemon: each node is a labelled container. It exists for development and
// integration testing against real transport flows without a cloud account,
// and exposes the full capability set (create/destroy, stop, suspend, close).
package docker

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
	"github.com/forklift-io/forklift/pkg/svc/compute"
)

// ProviderName is the registry name of the Docker provider.
const ProviderName = "docker"

// Labels identifying containers managed by this provider.
const (
	LabelNode  = "io.forklift.node"
	LabelGroup = "io.forklift.group"
	LabelUser  = "io.forklift.user"
)

// DefaultImage is the container image used when the spec names none.
const DefaultImage = "ubuntu:22.04"

// DefaultStopTimeout bounds container stop operations.
const DefaultStopTimeout = 60 * time.Second

// Service is a compute service whose nodes are Docker containers.
type Service struct {
	client   client.APIClient
	identity string

	// tags is an in-memory overlay; Docker labels are immutable after
	// container creation.
	mu   sync.RWMutex
	tags map[string]map[string]string
}

// NewService creates a Docker-backed compute service over an existing client.
func NewService(apiClient client.APIClient, identity string) *Service {
	return &Service{
		client:   apiClient,
		identity: identity,
		tags:     make(map[string]map[string]string),
	}
}

// NewDefaultClient creates a Docker API client from the environment and
// verifies the daemon is reachable.
func NewDefaultClient(ctx context.Context) (client.APIClient, error) {
	apiClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	if _, err := apiClient.Ping(ctx); err != nil {
		_ = apiClient.Close()

		return nil, fmt.Errorf("ping docker daemon: %w", err)
	}

	return apiClient, nil
}

// Nodes lists the containers this provider manages.
func (service *Service) Nodes(ctx context.Context) ([]compute.Node, error) {
	containers, err := service.listContainers(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]compute.Node, 0, len(containers))
	for _, ctr := range containers {
		nodes = append(nodes, service.containerToNode(ctr))
	}

	return nodes, nil
}

// TagNodes records tags in the in-memory overlay for the given nodes.
func (service *Service) TagNodes(
	_ context.Context,
	nodeIDs []string,
	tags map[string]string,
) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	for _, id := range nodeIDs {
		if service.tags[id] == nil {
			service.tags[id] = make(map[string]string, len(tags))
		}

		maps.Copy(service.tags[id], tags)
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

// CreateNodes runs count labelled containers from the spec's image.
func (service *Service) CreateNodes(
	ctx context.Context,
	spec *v1alpha1.NodeSpec,
	user string,
	count int,
) ([]compute.Node, error) {
	imageRef := DefaultImage
	if spec != nil && spec.Image != nil && spec.Image.ImageID != "" {
		imageRef = spec.Image.ImageID
	}

	group := "default"
	if spec != nil && spec.Location != nil && spec.Location.LocationID != "" {
		group = spec.Location.LocationID
	}

	created := make([]compute.Node, 0, count)

	for ordinal := 1; ordinal <= count; ordinal++ {
		name := fmt.Sprintf("%s-%d", group, ordinal)

		resp, err := service.client.ContainerCreate(ctx, &container.Config{
			Image: imageRef,
			Cmd:   []string{"sleep", "infinity"},
			Labels: map[string]string{
				LabelNode:  "true",
				LabelGroup: group,
				LabelUser:  user,
			},
		}, nil, nil, nil, name)
		if err != nil {
			return created, fmt.Errorf("failed to create container %s: %w", name, err)
		}

		if err := service.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
			return created, fmt.Errorf("failed to start container %s: %w", name, err)
		}

		created = append(created, compute.Node{
			ID:    resp.ID,
			Name:  name,
			Group: group,
			State: compute.NodeStateRunning,
			Tags:  map[string]string{"user": user},
		})
	}

	return created, nil
}

// DestroyNodes force-removes the given containers and returns the ids
// actually removed.
func (service *Service) DestroyNodes(ctx context.Context, nodeIDs []string) ([]string, error) {
	destroyed := make([]string, 0, len(nodeIDs))

	for _, id := range nodeIDs {
		err := service.client.ContainerRemove(ctx, id, container.RemoveOptions{
			Force:         true,
			RemoveVolumes: true,
		})
		if err != nil {
			return destroyed, fmt.Errorf("failed to remove container %s: %w", id, err)
		}

		destroyed = append(destroyed, id)
	}

	return destroyed, nil
}

// Images lists the images available on the daemon.
func (service *Service) Images(ctx context.Context) ([]compute.Image, error) {
	summaries, err := service.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	images := make([]compute.Image, 0, len(summaries))
	for _, summary := range summaries {
		img := compute.Image{ID: summary.ID}
		if len(summary.RepoTags) > 0 {
			img.Name = summary.RepoTags[0]
		}

		images = append(images, img)
	}

	return images, nil
}

// StopNodes stops the given containers.
func (service *Service) StopNodes(ctx context.Context, nodeIDs []string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, DefaultStopTimeout)
	defer cancel()

	for _, id := range nodeIDs {
		if err := service.client.ContainerStop(timeoutCtx, id, container.StopOptions{}); err != nil {
			return fmt.Errorf("failed to stop container %s: %w", id, err)
		}
	}

	return nil
}

// RestartNodes restarts the given containers.
func (service *Service) RestartNodes(ctx context.Context, nodeIDs []string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, DefaultStopTimeout)
	defer cancel()

	for _, id := range nodeIDs {
		if err := service.client.ContainerRestart(timeoutCtx, id, container.StopOptions{}); err != nil {
			return fmt.Errorf("failed to restart container %s: %w", id, err)
		}
	}

	return nil
}

// SuspendNodes pauses the given containers.
func (service *Service) SuspendNodes(ctx context.Context, nodeIDs []string) error {
	for _, id := range nodeIDs {
		if err := service.client.ContainerPause(ctx, id); err != nil {
			return fmt.Errorf("failed to pause container %s: %w", id, err)
		}
	}

	return nil
}

// ResumeNodes unpauses the given containers.
func (service *Service) ResumeNodes(ctx context.Context, nodeIDs []string) error {
	for _, id := range nodeIDs {
		if err := service.client.ContainerUnpause(ctx, id); err != nil {
			return fmt.Errorf("failed to unpause container %s: %w", id, err)
		}
	}

	return nil
}

// MatchesBaseName reports whether nodeName is baseName plus an ordinal
// suffix, the scheme CreateNodes names containers under.
func (service *Service) MatchesBaseName(nodeName string, baseName string) bool {
	suffix, ok := strings.CutPrefix(nodeName, baseName+"-")
	if !ok || suffix == "" {
		return false
	}

	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Close releases the Docker client.
func (service *Service) Close() error {
	if err := service.client.Close(); err != nil {
		return fmt.Errorf("close docker client: %w", err)
	}

	return nil
}

func (service *Service) listContainers(ctx context.Context) ([]container.Summary, error) {
	containers, err := service.client.ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", LabelNode+"=true"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	return containers, nil
}

func (service *Service) containerToNode(ctr container.Summary) compute.Node {
	name := ""
	if len(ctr.Names) > 0 {
		name = strings.TrimPrefix(ctr.Names[0], "/")
	}

	var privateAddrs []string

	if ctr.NetworkSettings != nil {
		for _, network := range ctr.NetworkSettings.Networks {
			if network.IPAddress != "" {
				privateAddrs = append(privateAddrs, network.IPAddress)
			}
		}
	}

	service.mu.RLock()
	tags := maps.Clone(service.tags[ctr.ID])
	service.mu.RUnlock()

	return compute.Node{
		ID:           ctr.ID,
		Name:         name,
		Group:        ctr.Labels[LabelGroup],
		State:        containerState(ctr.State),
		PrivateAddrs: privateAddrs,
		Tags:         tags,
	}
}

func containerState(state string) string {
	switch state {
	case "running":
		return compute.NodeStateRunning
	case "paused":
		return compute.NodeStateSuspended
	case "exited", "created":
		return compute.NodeStateStopped
	case "dead", "removing":
		return compute.NodeStateTerminated
	default:
		return state
	}
}
