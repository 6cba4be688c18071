package routemetrics

import "strconv"

const (
	MilesPerMeter      = 0.000621371
	KilometersPerMeter = 0.001
	FeetPerMeter       = 3.28084
)

// Distance is a route length in both display units.
type Distance struct {
	Miles      float64 `json:"miles"`
	Kilometers float64 `json:"km"`
}

func DistanceFromMeters(meters float64) Distance {
	return Distance{
		Miles:      meters * MilesPerMeter,
		Kilometers: meters * KilometersPerMeter,
	}
}

func MetersToFeet(meters float64) float64 {
	return meters * FeetPerMeter
}

// FormatFixed renders v with exactly two decimals.
func FormatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
