package loi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunsenReferenceWeighing(t *testing.T) {
	res, err := Calculate(MethodBunsen, Input{T1: -44.904, W1: 30.023, T2: -74.422}, DefaultLimits())
	require.NoError(t, err)

	assert.InDelta(t, 0.505, res.MassLoss, 1e-9)
	assert.InDelta(t, 0.505/30.023*100, res.LOI, 1e-9)
	assert.Equal(t, BandOptimal, res.Band)
	assert.True(t, res.Pass)
	assert.Equal(t, "Optimal binder content", res.Interpretation)
}

func TestOvenMatchesBunsenForSameWeighing(t *testing.T) {
	bunsen, err := Calculate(MethodBunsen, Input{T1: -44.904, W1: 30.023, T2: -74.422}, DefaultLimits())
	require.NoError(t, err)
	oven, err := Calculate(MethodOven, Input{T1: 44.904, W1: 30.023, T2: 74.422}, DefaultLimits())
	require.NoError(t, err)

	assert.InDelta(t, bunsen.LOI, oven.LOI, 1e-9)
	assert.Equal(t, MethodOven, oven.Method)
}

func TestOvenRejectsNegativeMassLoss(t *testing.T) {
	_, err := Calculate(MethodOven, Input{T1: 44.0, W1: 30.0, T2: 75.0}, DefaultLimits())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "reweigh")
}

func TestClassifyBands(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		pct  float64
		want Band
	}{
		{0.0, BandInsufficient},
		{0.49, BandInsufficient},
		{0.5, BandOptimal},
		{1.7, BandOptimal},
		{2.5, BandOptimal},
		{2.51, BandExcessive},
		{10, BandExcessive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.pct, l), "pct %v", tt.pct)
	}
}

func TestEveryBandHasInterpretation(t *testing.T) {
	for _, b := range []Band{BandInsufficient, BandOptimal, BandExcessive} {
		assert.NotEmpty(t, b.Interpretation())
	}
}

func TestExcessiveBinderFails(t *testing.T) {
	// Δm = |(75 - 44) - 30| = 1.0 g; 1/30 = 3.33 %
	res, err := Calculate(MethodBunsen, Input{T1: -44, W1: 30, T2: -75}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, BandExcessive, res.Band)
	assert.False(t, res.Pass)
}

func TestValidate(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		name string
		m    Method
		in   Input
	}{
		{"sample too light", MethodBunsen, Input{T1: -44, W1: 19.9, T2: -63}},
		{"sample too heavy", MethodBunsen, Input{T1: -44, W1: 40.1, T2: -84}},
		{"zero bowl", MethodBunsen, Input{T1: 0, W1: 30, T2: -74}},
		{"nan", MethodBunsen, Input{T1: math.NaN(), W1: 30, T2: -74}},
		{"oven negative", MethodOven, Input{T1: -44, W1: 30, T2: 74}},
		{"unknown method", Method("kiln"), Input{T1: 44, W1: 30, T2: 74}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.m, tt.in, l)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLimitsValidate(t *testing.T) {
	assert.NoError(t, DefaultLimits().Validate())
	assert.ErrorIs(t, Limits{SampleMin: 40, SampleMax: 20, OptimalMax: 1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Limits{SampleMin: 20, SampleMax: 40, OptimalMin: 3, OptimalMax: 1}.Validate(), ErrInvalidInput)

	nan, inf := math.NaN(), math.Inf(1)
	for _, l := range []Limits{
		{SampleMin: 20, SampleMax: 40, OptimalMin: 3, OptimalMax: nan},
		{SampleMin: 20, SampleMax: 40, OptimalMin: nan, OptimalMax: 5},
		{SampleMin: 20, SampleMax: nan, OptimalMin: 3, OptimalMax: 5},
		{SampleMin: 20, SampleMax: inf, OptimalMin: 3, OptimalMax: 5},
		{SampleMin: 20, SampleMax: 40, OptimalMin: 3, OptimalMax: inf},
	} {
		assert.ErrorIs(t, l.Validate(), ErrInvalidInput, "%+v", l)
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Oven ")
	require.NoError(t, err)
	assert.Equal(t, MethodOven, m)
	assert.Equal(t, "Bunsen Burner (Section 3.5.1)", MethodBunsen.Label())

	_, err = ParseMethod("kiln")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
