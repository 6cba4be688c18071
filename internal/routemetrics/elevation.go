package routemetrics

import (
	"fmt"
	"math"
)

// InvalidInputError reports an elevation sample that is NaN or infinite.
type InvalidInputError struct {
	Index int
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid elevation sample at index %d: %v", e.Index, e.Value)
}

// ElevationGain sums the positive differences between consecutive samples,
// in the samples' unit. Descents and flat stretches contribute nothing, and
// fewer than two samples yield 0.
//
// Samples are differenced raw with no smoothing or minimum step, so sensor
// noise on flat ground inflates the total.
func ElevationGain(elevations []float64) (float64, error) {
	var gain float64

	for i, elevation := range elevations {
		if math.IsNaN(elevation) || math.IsInf(elevation, 0) {
			return 0, &InvalidInputError{Index: i, Value: elevation}
		}
		if i == 0 {
			continue
		}
		if diff := elevation - elevations[i-1]; diff > 0 {
			gain += diff
		}
	}

	return gain, nil
}
