package routemetrics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevationGain(t *testing.T) {
	tests := []struct {
		name       string
		elevations []float64
		expected   float64
	}{
		{name: "empty", elevations: []float64{}, expected: 0},
		{name: "nil", elevations: nil, expected: 0},
		{name: "single sample", elevations: []float64{5}, expected: 0},
		{name: "only the rise after a dip counts", elevations: []float64{100, 90, 110}, expected: 20},
		{name: "monotonic climb", elevations: []float64{1200, 1250, 1400, 1401.5}, expected: 201.5},
		{name: "monotonic descent", elevations: []float64{1400, 1250, 1200}, expected: 0},
		{name: "flat", elevations: []float64{800, 800, 800}, expected: 0},
		{name: "negative elevations", elevations: []float64{-86, -80, -90, -70}, expected: 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain, err := ElevationGain(tt.elevations)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, gain, 1e-9)
		})
	}
}

func TestElevationGainRejectsNonFiniteSamples(t *testing.T) {
	tests := []struct {
		name       string
		elevations []float64
		wantIndex  int
	}{
		{name: "NaN", elevations: []float64{100, math.NaN(), 110}, wantIndex: 1},
		{name: "positive infinity", elevations: []float64{100, 110, math.Inf(1)}, wantIndex: 2},
		{name: "negative infinity first", elevations: []float64{math.Inf(-1)}, wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain, err := ElevationGain(tt.elevations)
			assert.Zero(t, gain)

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.wantIndex, invalid.Index)
		})
	}
}

func TestElevationGainIsNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 100; run++ {
		samples := make([]float64, rng.Intn(60))
		for i := range samples {
			samples[i] = rng.Float64()*4000 - 500
		}

		gain, err := ElevationGain(samples)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, gain, 0.0)
	}
}

func TestElevationGainIgnoresDescendingTail(t *testing.T) {
	base := []float64{1200, 1310, 1290, 1450}
	before, err := ElevationGain(base)
	require.NoError(t, err)

	withTail := append(append([]float64{}, base...), 1440, 1300, 1100, 950)
	after, err := ElevationGain(withTail)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}
