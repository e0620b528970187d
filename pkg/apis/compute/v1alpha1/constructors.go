package v1alpha1

// NewNodeSpec creates an empty NodeSpec. Predicates are attached with the
// With* helpers; the result is meant to be treated as immutable afterwards.
func NewNodeSpec() *NodeSpec {
	return &NodeSpec{}
}

// NewInboundPort builds the bare-port form of an InboundPort: a degenerate
// range opening a single TCP port.
func NewInboundPort(port int) InboundPort {
	return InboundPort{Start: port, End: port, Protocol: ProtocolTCP}
}

// WithImage sets the image predicate and returns the spec for chaining.
func (spec *NodeSpec) WithImage(image ImagePredicate) *NodeSpec {
	spec.Image = &image

	return spec
}

// WithLocation sets the location predicate and returns the spec for chaining.
func (spec *NodeSpec) WithLocation(location LocationPredicate) *NodeSpec {
	spec.Location = &location

	return spec
}

// WithHardware sets the hardware predicate and returns the spec for chaining.
func (spec *NodeSpec) WithHardware(hardware HardwarePredicate) *NodeSpec {
	spec.Hardware = &hardware

	return spec
}

// WithNetwork sets the network configuration and returns the spec for chaining.
func (spec *NodeSpec) WithNetwork(network NetworkConfig) *NodeSpec {
	spec.Network = &network

	return spec
}

// WithQoS sets the QoS configuration and returns the spec for chaining.
func (spec *NodeSpec) WithQoS(qos QoSConfig) *NodeSpec {
	spec.QoS = &qos

	return spec
}

// WithExtension sets one provider-specific passthrough key and returns the
// spec for chaining.
func (spec *NodeSpec) WithExtension(key string, value any) *NodeSpec {
	if spec.Extensions == nil {
		spec.Extensions = map[string]any{}
	}

	spec.Extensions[key] = value

	return spec
}
