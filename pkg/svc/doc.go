// Package svc provides service layer components for Forklift.
//
// This package contains the business logic layer that coordinates between
// callers and the underlying clients/infrastructure.
//
// Subpackages:
//   - compute: Capability-based compute services, provider registry, and the
//     asynchronous provisioning facade
//   - uploader: Idempotent content-addressed file delivery onto nodes
package svc
