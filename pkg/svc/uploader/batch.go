package uploader

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// minConcurrency is the minimum number of concurrent uploads.
	minConcurrency = 2
	// maxConcurrencyCap caps concurrency to avoid overwhelming nodes with
	// parallel SSH sessions.
	maxConcurrencyCap = 8
)

// DefaultMaxConcurrency returns the default upload concurrency based on
// available CPUs.
func DefaultMaxConcurrency() int64 {
	numCPU := int64(runtime.NumCPU())

	return min(max(numCPU, minConcurrency), maxConcurrencyCap)
}

// UploadAll delivers every target with bounded concurrency and returns one
// result per target, in target order. Targets are expected to be distinct;
// two concurrent uploads of the same (user, target-path) are not protected
// against each other. No ordering holds between uploads of different
// targets.
func UploadAll(
	ctx context.Context,
	strategy Uploader,
	maxConcurrency int64,
	targets ...UploadTarget,
) []Result {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency()
	}

	results := make([]Result, len(targets))

	sem := semaphore.NewWeighted(maxConcurrency)
	group, groupCtx := errgroup.WithContext(ctx)

	for i, target := range targets {
		group.Go(func() error {
			if err := sem.Acquire(groupCtx, 1); err != nil {
				results[i] = failed(target, "", err)

				return nil //nolint:nilerr // Failures live in the result slice
			}
			defer sem.Release(1)

			results[i] = strategy.Upload(groupCtx, target)

			return nil
		})
	}

	_ = group.Wait()

	return results
}
