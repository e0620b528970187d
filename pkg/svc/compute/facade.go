package compute

import (
	"context"

	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
	"github.com/forklift-io/forklift/pkg/async"
)

// Nodes enumerates the service's current nodes, delivering the result on the
// caller's completion channel.
func Nodes(ctx context.Context, service Service, channel chan<- async.Result[[]Node]) {
	if service == nil {
		async.Fail(channel, unsupported(nil, OpNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]Node, error) {
		return service.Nodes(ctx)
	})
}

// Targets enumerates the service's current nodes wrapped as addressable
// targets. It is derived from Nodes: the single upstream result is awaited,
// its nodes wrapped in order, and any upstream error forwarded verbatim.
func Targets(ctx context.Context, service Service, channel chan<- async.Result[[]Target]) {
	inner := async.NewChannel[[]Node]()
	Nodes(ctx, service, inner)

	async.Derive(ctx, inner, channel, func(nodes []Node) []Target {
		targets := make([]Target, 0, len(nodes))
		for _, node := range nodes {
			targets = append(targets, Target{Node: node})
		}

		return targets
	})
}

// CreateNodes provisions count nodes matching spec for user. The spec and its
// image field are checked structurally before any remote contact, turning a
// malformed request into an immediate local failure on the channel.
func CreateNodes(
	ctx context.Context,
	service Service,
	spec *v1alpha1.NodeSpec,
	user string,
	count int,
	channel chan<- async.Result[[]Node],
) {
	if err := v1alpha1.Validate(spec); err != nil {
		async.Fail(channel, err)

		return
	}

	if err := v1alpha1.ValidateImage(spec); err != nil {
		async.Fail(channel, err)

		return
	}

	creator, ok := service.(CreateDestroyer)
	if !ok {
		async.Fail(channel, unsupported(service, OpCreateNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]Node, error) {
		return creator.CreateNodes(ctx, spec, user, count)
	})
}

// DestroyNodes terminates the given nodes, delivering the ids actually
// destroyed.
func DestroyNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	channel chan<- async.Result[[]string],
) {
	destroyer, ok := service.(CreateDestroyer)
	if !ok {
		async.Fail(channel, unsupported(service, OpDestroyNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		return destroyer.DestroyNodes(ctx, nodeIDs)
	})
}

// Images enumerates the images available for node creation.
func Images(ctx context.Context, service Service, channel chan<- async.Result[[]Image]) {
	lister, ok := service.(CreateDestroyer)
	if !ok {
		async.Fail(channel, unsupported(service, OpImages))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]Image, error) {
		return lister.Images(ctx)
	})
}

// RestartNodes restarts the given nodes.
func RestartNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	channel chan<- async.Result[[]string],
) {
	stopper, ok := service.(Stopper)
	if !ok {
		async.Fail(channel, unsupported(service, OpRestartNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		if err := stopper.RestartNodes(ctx, nodeIDs); err != nil {
			return nil, err
		}

		return nodeIDs, nil
	})
}

// StopNodes stops the given nodes.
func StopNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	channel chan<- async.Result[[]string],
) {
	stopper, ok := service.(Stopper)
	if !ok {
		async.Fail(channel, unsupported(service, OpStopNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		if err := stopper.StopNodes(ctx, nodeIDs); err != nil {
			return nil, err
		}

		return nodeIDs, nil
	})
}

// SuspendNodes pauses the given nodes.
func SuspendNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	channel chan<- async.Result[[]string],
) {
	suspender, ok := service.(Suspender)
	if !ok {
		async.Fail(channel, unsupported(service, OpSuspendNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		if err := suspender.SuspendNodes(ctx, nodeIDs); err != nil {
			return nil, err
		}

		return nodeIDs, nil
	})
}

// ResumeNodes resumes the given nodes.
func ResumeNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	channel chan<- async.Result[[]string],
) {
	suspender, ok := service.(Suspender)
	if !ok {
		async.Fail(channel, unsupported(service, OpResumeNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		if err := suspender.ResumeNodes(ctx, nodeIDs); err != nil {
			return nil, err
		}

		return nodeIDs, nil
	})
}

// TagNodes attaches tags to the given nodes, delivering the tagged ids.
func TagNodes(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	tags map[string]string,
	channel chan<- async.Result[[]string],
) {
	if service == nil {
		async.Fail(channel, unsupported(nil, OpTagNodes))

		return
	}

	async.Go(ctx, channel, func(ctx context.Context) ([]string, error) {
		if err := service.TagNodes(ctx, nodeIDs, tags); err != nil {
			return nil, err
		}

		return nodeIDs, nil
	})
}

// TagNodesSync is the blocking form of TagNodes for call sites that want to
// wait at the call site. The underlying operation stays asynchronous.
func TagNodesSync(
	ctx context.Context,
	service Service,
	nodeIDs []string,
	tags map[string]string,
) ([]string, error) {
	channel := async.NewChannel[[]string]()
	TagNodes(ctx, service, nodeIDs, tags, channel)

	return async.Await(ctx, channel)
}

// MatchesBaseName reports whether nodeName derives from baseName under the
// service's naming scheme. The predicate is local; a service without the
// capability yields ErrUnsupportedOperation.
func MatchesBaseName(service Service, nodeName string, baseName string) (bool, error) {
	matcher, ok := service.(BaseNameMatcher)
	if !ok {
		return false, unsupported(service, OpMatchesBaseName)
	}

	return matcher.MatchesBaseName(nodeName, baseName), nil
}

// Close releases the service's provider resources. Services without the
// Closeable capability are a no-op, not an error.
func Close(service Service) error {
	closer, ok := service.(Closeable)
	if !ok {
		return nil
	}

	return closer.Close()
}

// Properties returns the provider identity of the service.
func Properties(service Service) ServiceProperties {
	if service == nil {
		return ServiceProperties{}
	}

	return service.Properties()
}
