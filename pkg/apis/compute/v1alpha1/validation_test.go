package v1alpha1_test

import (
	"math"
	"testing"

	"github.com/forklift-io/forklift/pkg/apis/compute/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spotPrice(price float64) *float64 {
	return &price
}

func TestValidate_AcceptsValidSpec(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().
		WithImage(v1alpha1.ImagePredicate{ImageID: "ubuntu-20"}).
		WithHardware(v1alpha1.HardwarePredicate{MinCores: 2, MinRAM: 2048}).
		WithNetwork(v1alpha1.NetworkConfig{
			InboundPorts: []v1alpha1.InboundPort{
				v1alpha1.NewInboundPort(22),
				{Start: 8000, End: 8080, Protocol: v1alpha1.ProtocolTCP},
			},
		}).
		WithQoS(v1alpha1.QoSConfig{SpotPrice: spotPrice(0.04)})

	require.NoError(t, v1alpha1.Validate(spec))
}

func TestValidate_AcceptsEmptySpec(t *testing.T) {
	t.Parallel()

	require.NoError(t, v1alpha1.Validate(v1alpha1.NewNodeSpec()))
}

func TestValidate_RejectsNilSpec(t *testing.T) {
	t.Parallel()

	err := v1alpha1.Validate(nil)

	require.Error(t, err)
	require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
}

func TestValidate_UnknownExtensionsPass(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().
		WithExtension("placementGroup", "pg-1").
		WithExtension("tenancy", 3)

	require.NoError(t, v1alpha1.Validate(spec))
}

func TestValidate_RejectsMalformedInboundPort(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		port v1alpha1.InboundPort
	}{
		{"zero port", v1alpha1.InboundPort{Start: 0, End: 0}},
		{"out of range", v1alpha1.InboundPort{Start: 1, End: 70000}},
		{"inverted range", v1alpha1.InboundPort{Start: 8080, End: 8000}},
		{"unknown protocol", v1alpha1.InboundPort{Start: 22, End: 22, Protocol: "gopher"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			spec := v1alpha1.NewNodeSpec().WithNetwork(v1alpha1.NetworkConfig{
				InboundPorts: []v1alpha1.InboundPort{testCase.port},
			})

			err := v1alpha1.Validate(spec)
			require.Error(t, err)
			require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
		})
	}
}

func TestValidate_RejectsNonNumericSpotPrice(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		price float64
	}{
		{"negative", -0.5},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			spec := v1alpha1.NewNodeSpec().
				WithQoS(v1alpha1.QoSConfig{SpotPrice: spotPrice(testCase.price)})

			err := v1alpha1.Validate(spec)
			require.Error(t, err)
			require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
		})
	}
}

func TestValidate_RejectsNegativeHardwareMinimums(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().
		WithHardware(v1alpha1.HardwarePredicate{MinCores: -1})

	err := v1alpha1.Validate(spec)
	require.Error(t, err)
	require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
}

func TestValidate_RejectsUnstructuredRecognizedExtension(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().WithExtension("image", "ubuntu-20")

	err := v1alpha1.Validate(spec)
	require.Error(t, err)
	require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
	assert.Contains(t, err.Error(), "image")
}

func TestValidate_AcceptsStructuredRecognizedExtension(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().
		WithExtension("image", map[string]any{"imageId": "ubuntu-20"})

	require.NoError(t, v1alpha1.Validate(spec))
}

func TestValidateImage_RejectsUnstructuredImage(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewNodeSpec().WithExtension("image", 42)

	err := v1alpha1.ValidateImage(spec)
	require.Error(t, err)
	require.ErrorIs(t, err, v1alpha1.ErrSchemaViolation)
}

func TestValidateImage_AcceptsMissingImage(t *testing.T) {
	t.Parallel()

	require.NoError(t, v1alpha1.ValidateImage(v1alpha1.NewNodeSpec()))
}

func TestMatchesSelectors_IntersectionMatches(t *testing.T) {
	t.Parallel()

	meta := &v1alpha1.NodeSpecMeta{
		Spec:      *v1alpha1.NewNodeSpec(),
		Selectors: []string{"web", "staging"},
	}

	matched, err := v1alpha1.MatchesSelectors([]string{"staging", "db"}, meta)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestMatchesSelectors_DisjointSetsDoNotMatch(t *testing.T) {
	t.Parallel()

	meta := &v1alpha1.NodeSpecMeta{
		Spec:      *v1alpha1.NewNodeSpec(),
		Selectors: []string{"web"},
	}

	matched, err := v1alpha1.MatchesSelectors([]string{"db"}, meta)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestMatchesSelectors_NonConformingMetaFailsPrecondition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		meta *v1alpha1.NodeSpecMeta
	}{
		{"nil meta", nil},
		{"missing selector set", &v1alpha1.NodeSpecMeta{Spec: *v1alpha1.NewNodeSpec()}},
		{
			"malformed spec",
			&v1alpha1.NodeSpecMeta{
				Spec:      *v1alpha1.NewNodeSpec().WithExtension("image", "raw"),
				Selectors: []string{"web"},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			matched, err := v1alpha1.MatchesSelectors([]string{"web"}, testCase.meta)
			require.Error(t, err)
			require.ErrorIs(t, err, v1alpha1.ErrInvalidNodeSpecMeta)
			assert.False(t, matched)
		})
	}
}

func TestNewInboundPort_BuildsDegenerateRange(t *testing.T) {
	t.Parallel()

	port := v1alpha1.NewInboundPort(22)

	assert.Equal(t, 22, port.Start)
	assert.Equal(t, 22, port.End)
	assert.Equal(t, v1alpha1.ProtocolTCP, port.Protocol)
}
