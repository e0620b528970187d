package v1alpha1

import "errors"

// ErrSchemaViolation is returned when a recognized field of a NodeSpec has the
// wrong shape. It always signals a local structural failure; a spec that fails
// validation never reaches a provider.
var ErrSchemaViolation = errors.New("node spec schema violation")

// ErrInvalidNodeSpecMeta is returned when a value that must conform to the
// NodeSpecMeta shape does not. Selector matching treats this as a failed
// precondition rather than a non-match.
var ErrInvalidNodeSpecMeta = errors.New("invalid node spec meta")
