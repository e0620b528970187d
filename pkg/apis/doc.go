// Package apis provides API type definitions for Forklift resources.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - compute: Node specification and predicate types consumed by the
//     provisioning facade
//
// The API types are designed to be serializable and to evolve per API group
// and version (for example compute/v1alpha1) without breaking callers.
package apis
