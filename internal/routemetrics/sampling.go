package routemetrics

// MaxElevationSamples bounds how many points of a route are sent to the
// elevation service.
const MaxElevationSamples = 100

// SampleEvenly picks at most limit evenly spaced coordinates, always starting
// with the first one. The stride is ceil(len/limit), so sequences no longer
// than limit come back whole and 250 points sample down to 84. A floor stride
// would return 125 of them and break the limit. A non-positive limit disables
// sampling.
func SampleEvenly(coords []Coordinate, limit int) []Coordinate {
	if limit <= 0 || len(coords) <= limit {
		sampled := make([]Coordinate, len(coords))
		copy(sampled, coords)
		return sampled
	}

	stride := (len(coords) + limit - 1) / limit
	sampled := make([]Coordinate, 0, (len(coords)+stride-1)/stride)
	for i := 0; i < len(coords); i += stride {
		sampled = append(sampled, coords[i])
	}
	return sampled
}

// SampleForElevation selects the points used for elevation lookups.
func SampleForElevation(coords []Coordinate) []Coordinate {
	return SampleEvenly(coords, MaxElevationSamples)
}
