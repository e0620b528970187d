package v1alpha1

const (
	// Group is the API group for the compute types.
	Group = "compute.forklift.io"
	// Version is the API version for the compute types.
	Version = "v1alpha1"
)

// --- Core Types ---

// NodeSpec declares the criteria for the nodes a caller wants provisioned.
// Every predicate is optional; a zero NodeSpec matches any node a provider
// chooses to hand out. The spec is a caller-owned value and is treated as
// immutable once built.
type NodeSpec struct {
	Image    *ImagePredicate    `json:"image,omitzero"`
	Location *LocationPredicate `json:"location,omitzero"`
	Hardware *HardwarePredicate `json:"hardware,omitzero"`
	Network  *NetworkConfig     `json:"network,omitzero"`
	QoS      *QoSConfig         `json:"qos,omitzero"`

	// Extensions carries provider-specific keys that are passed through to
	// the backend untouched. A recognized field name appearing here must
	// still be structured; see Validate.
	Extensions map[string]any `json:"extensions,omitzero"`
}

// ImagePredicate filters the images a provider may select for new nodes.
type ImagePredicate struct {
	ImageID              string `json:"imageId,omitzero"`
	OSFamily             string `json:"osFamily,omitzero"`
	OSVersionMatches     string `json:"osVersionMatches,omitzero"`
	OSDescriptionMatches string `json:"osDescriptionMatches,omitzero"`
	Is64Bit              *bool  `json:"is64Bit,omitzero"`

	Extensions map[string]any `json:"extensions,omitzero"`
}

// LocationPredicate filters the locations a provider may place new nodes in.
type LocationPredicate struct {
	LocationID string `json:"locationId,omitzero"`

	Extensions map[string]any `json:"extensions,omitzero"`
}

// HardwarePredicate filters the hardware profiles a provider may select.
// Minimums are lower bounds, not exact matches.
type HardwarePredicate struct {
	HardwareID string  `json:"hardwareId,omitzero"`
	MinCores   float64 `json:"minCores,omitzero"`
	MinRAM     int     `json:"minRam,omitzero"`
	MinDisk    float64 `json:"minDisk,omitzero"`

	Extensions map[string]any `json:"extensions,omitzero"`
}

// NetworkConfig declares the network shape of new nodes.
type NetworkConfig struct {
	InboundPorts []InboundPort `json:"inboundPorts,omitzero"`

	Extensions map[string]any `json:"extensions,omitzero"`
}

// InboundPort is a port range opened for inbound traffic. A bare port is the
// degenerate range where Start == End; NewInboundPort builds that form.
type InboundPort struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Protocol string `json:"protocol,omitzero"`
}

// QoSConfig declares quality-of-service options for new nodes.
type QoSConfig struct {
	// SpotPrice is the maximum spot/preemptible price the caller will pay.
	// Nil means on-demand.
	SpotPrice *float64 `json:"spotPrice,omitzero"`

	EnableMonitoring bool `json:"enableMonitoring,omitzero"`

	Extensions map[string]any `json:"extensions,omitzero"`
}

// NodeSpecMeta pairs a NodeSpec with the selector tags that decide when it
// applies, plus optional naming hints. Metas are filtered by selector-set
// intersection; see MatchesSelectors.
type NodeSpecMeta struct {
	Spec NodeSpec `json:"spec"`

	// Selectors is the tag set this meta applies to. It must be present for
	// the meta to conform; MatchesSelectors treats a missing set as a
	// precondition failure rather than a non-match.
	Selectors []string `json:"selectors"`

	Name        string `json:"name,omitzero"`
	GroupSuffix string `json:"groupSuffix,omitzero"`
}

// SupportedProtocols returns the inbound-port protocols validation accepts.
func SupportedProtocols() []string {
	return []string{ProtocolTCP, ProtocolUDP, ProtocolICMP}
}

// Inbound-port protocols.
const (
	ProtocolTCP  = "tcp"
	ProtocolUDP  = "udp"
	ProtocolICMP = "icmp"
)
