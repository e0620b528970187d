// Package v1alpha1 contains the declarative node specification types for the
// compute API group.
//
// A NodeSpec describes the nodes a caller wants provisioned (image, location,
// hardware, network, and QoS predicates) without binding to any particular
// provider. Specs are plain values: immutable once built, validated
// structurally before use, and never checked against a specific provider's
// catalog by this package.
//
// Recognized fields are typed; everything a provider may understand beyond
// them travels in open extension bags that validation passes through
// untouched.
package v1alpha1
