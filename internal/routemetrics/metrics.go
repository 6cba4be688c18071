package routemetrics

// Metrics is the display summary of a route: how far it goes and how much it
// climbs.
type Metrics struct {
	DistanceMeters      float64  `json:"distanceMeters"`
	Distance            Distance `json:"distance"`
	MilesText           string   `json:"miles"`
	KilometersText      string   `json:"km"`
	ElevationGainMeters float64  `json:"elevationGainMeters"`
	ElevationGainFeet   float64  `json:"elevationGainFeet"`
	ElevationGainText   string   `json:"elevationGain"`
}

// Summarize converts a route length and its sampled elevations into display
// metrics. It fails only when a sample is not finite.
func Summarize(distanceMeters float64, elevations []float64) (Metrics, error) {
	gain, err := ElevationGain(elevations)
	if err != nil {
		return Metrics{}, err
	}
	return NewMetrics(distanceMeters, gain), nil
}

// NewMetrics builds display metrics from an already aggregated gain.
func NewMetrics(distanceMeters, gainMeters float64) Metrics {
	distance := DistanceFromMeters(distanceMeters)
	feet := MetersToFeet(gainMeters)

	return Metrics{
		DistanceMeters:      distanceMeters,
		Distance:            distance,
		MilesText:           FormatFixed(distance.Miles),
		KilometersText:      FormatFixed(distance.Kilometers),
		ElevationGainMeters: gainMeters,
		ElevationGainFeet:   feet,
		ElevationGainText:   FormatFixed(feet),
	}
}
