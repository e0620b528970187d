package v1alpha1

import (
	"fmt"
	"math"
	"slices"
)

// MaxPort is the highest valid inbound port number.
const MaxPort = 65535

// reservedExtensionKeys are the recognized NodeSpec field names. When one of
// them shows up inside an extension bag its value must still be structured
// (a nested map); anything else is a shape mismatch on a recognized field.
// Unrecognized keys always pass untouched.
var reservedExtensionKeys = []string{
	"image", "location", "hardware", "network", "qos",
}

// Validate checks a NodeSpec structurally: every recognized field must have
// the right shape, while unknown extension keys pass through untouched. It
// returns nil for a valid spec, or an error wrapping ErrSchemaViolation
// describing the first malformed field. Validation is purely local and never
// consults a provider.
func Validate(spec *NodeSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrSchemaViolation)
	}

	if err := validateExtensions(spec.Extensions); err != nil {
		return err
	}

	if spec.Hardware != nil {
		if err := validateHardware(spec.Hardware); err != nil {
			return err
		}
	}

	if spec.Network != nil {
		for _, port := range spec.Network.InboundPorts {
			if err := validateInboundPort(port); err != nil {
				return err
			}
		}
	}

	if spec.QoS != nil && spec.QoS.SpotPrice != nil {
		price := *spec.QoS.SpotPrice
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return fmt.Errorf(
				"%w: qos.spotPrice must be a non-negative number (got %v)",
				ErrSchemaViolation, price,
			)
		}
	}

	return nil
}

// ValidateImage checks that the spec's image field, when present in any form,
// is structured. The compute facade runs this before create-nodes so a
// malformed request fails locally instead of reaching a provider.
func ValidateImage(spec *NodeSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrSchemaViolation)
	}

	raw, ok := spec.Extensions["image"]
	if !ok {
		return nil
	}

	if _, structured := raw.(map[string]any); !structured {
		return fmt.Errorf(
			"%w: image must be structured (got %T)",
			ErrSchemaViolation, raw,
		)
	}

	return nil
}

// MatchesSelectors reports whether the selector set intersects the meta's
// selector set. A meta that does not conform to the NodeSpecMeta shape (nil,
// missing selector set, or malformed spec) fails the precondition and yields
// an error wrapping ErrInvalidNodeSpecMeta instead of false.
func MatchesSelectors(selectors []string, meta *NodeSpecMeta) (bool, error) {
	if meta == nil {
		return false, fmt.Errorf("%w: meta is nil", ErrInvalidNodeSpecMeta)
	}

	if meta.Selectors == nil {
		return false, fmt.Errorf("%w: selector set is missing", ErrInvalidNodeSpecMeta)
	}

	if err := Validate(&meta.Spec); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidNodeSpecMeta, err)
	}

	for _, selector := range selectors {
		if slices.Contains(meta.Selectors, selector) {
			return true, nil
		}
	}

	return false, nil
}

func validateExtensions(extensions map[string]any) error {
	for _, key := range reservedExtensionKeys {
		raw, ok := extensions[key]
		if !ok {
			continue
		}

		if _, structured := raw.(map[string]any); !structured {
			return fmt.Errorf(
				"%w: extension %q shadows a recognized field and must be structured (got %T)",
				ErrSchemaViolation, key, raw,
			)
		}
	}

	return nil
}

func validateHardware(hardware *HardwarePredicate) error {
	if hardware.MinCores < 0 || math.IsNaN(hardware.MinCores) {
		return fmt.Errorf(
			"%w: hardware.minCores must be non-negative (got %v)",
			ErrSchemaViolation, hardware.MinCores,
		)
	}

	if hardware.MinRAM < 0 {
		return fmt.Errorf(
			"%w: hardware.minRam must be non-negative (got %d)",
			ErrSchemaViolation, hardware.MinRAM,
		)
	}

	if hardware.MinDisk < 0 || math.IsNaN(hardware.MinDisk) {
		return fmt.Errorf(
			"%w: hardware.minDisk must be non-negative (got %v)",
			ErrSchemaViolation, hardware.MinDisk,
		)
	}

	return nil
}

func validateInboundPort(port InboundPort) error {
	if port.Start < 1 || port.Start > MaxPort || port.End < 1 || port.End > MaxPort {
		return fmt.Errorf(
			"%w: inbound port out of range 1-%d (got %d-%d)",
			ErrSchemaViolation, MaxPort, port.Start, port.End,
		)
	}

	if port.Start > port.End {
		return fmt.Errorf(
			"%w: inbound port range is inverted (got %d-%d)",
			ErrSchemaViolation, port.Start, port.End,
		)
	}

	if port.Protocol != "" && !slices.Contains(SupportedProtocols(), port.Protocol) {
		return fmt.Errorf(
			"%w: unsupported inbound port protocol %q (supported: %v)",
			ErrSchemaViolation, port.Protocol, SupportedProtocols(),
		)
	}

	return nil
}
