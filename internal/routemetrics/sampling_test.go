package routemetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRoute(n int) []Coordinate {
	coords := make([]Coordinate, n)
	for i := range coords {
		coords[i] = Coordinate{Lon: -119.5 + float64(i)*0.0001, Lat: 37.7 + float64(i)*0.0001}
	}
	return coords
}

func TestSampleForElevation(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		wantLen     int
		wantIndices []int
	}{
		{name: "empty route", n: 0, wantLen: 0},
		{name: "short route keeps every point", n: 50, wantLen: 50, wantIndices: []int{0, 1, 49}},
		{name: "exactly the limit", n: 100, wantLen: 100, wantIndices: []int{0, 99}},
		{name: "just over the limit", n: 101, wantLen: 51, wantIndices: []int{0, 2, 100}},
		{name: "long route", n: 250, wantLen: 84, wantIndices: []int{0, 3, 249}},
		{name: "very long route", n: 10000, wantLen: 100, wantIndices: []int{0, 100, 9900}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := makeRoute(tt.n)
			sampled := SampleForElevation(route)

			require.NotNil(t, sampled)
			assert.Len(t, sampled, tt.wantLen)
			assert.LessOrEqual(t, len(sampled), MaxElevationSamples)

			for _, idx := range tt.wantIndices {
				assert.Contains(t, sampled, route[idx])
			}
			if tt.n > 0 {
				assert.Equal(t, route[0], sampled[0])
			}
		})
	}
}

func TestSampleEvenlyDoesNotAliasInput(t *testing.T) {
	route := makeRoute(10)
	sampled := SampleEvenly(route, 0)
	require.Len(t, sampled, 10)

	sampled[0] = Coordinate{}
	assert.NotEqual(t, Coordinate{}, route[0])
}

func TestSampleEvenlyCustomLimit(t *testing.T) {
	sampled := SampleEvenly(makeRoute(10), 3)
	// stride ceil(10/3) = 4 -> indices 0, 4, 8
	assert.Len(t, sampled, 3)
}
