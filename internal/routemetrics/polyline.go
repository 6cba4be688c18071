// Package routemetrics turns a directions provider's encoded route geometry
// into coordinates, and elevation samples along that route into a cumulative
// ascent figure. Every function here is pure and safe for concurrent use.
package routemetrics

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-polyline"
)

const (
	polylineScale   = 1e5
	polylineOffset  = 63
	continuationBit = 0x20
	chunkMask       = 0x1f
	maxChunkShift   = 64 - 5 // last shift that still fits a whole chunk
)

// Coordinate is a route vertex in degrees. Longitude comes first because the
// map layer consumes [lon, lat] pairs.
type Coordinate struct {
	Lon float64
	Lat float64
}

// MarshalJSON encodes the coordinate as a [lon, lat] array.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

// UnmarshalJSON accepts a [lon, lat] array.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lon, lat] pair: %w", err)
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

// DecodeError reports a malformed encoded polyline. Offset is the byte
// position at which decoding gave up.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed polyline at byte %d: %s", e.Offset, e.Reason)
}

// DecodePolyline decodes a precision-5 Google encoded polyline. An empty
// string yields an empty, non-nil sequence. Input that ends mid-value, holds
// a latitude without its longitude, or contains bytes outside the polyline
// alphabet fails with a *DecodeError and no partial result.
func DecodePolyline(encoded string) ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(encoded)/4)

	var lat, lng int64
	for i := 0; i < len(encoded); {
		dLat, next, err := decodeValue(encoded, i)
		if err != nil {
			return nil, err
		}
		if next == len(encoded) {
			return nil, &DecodeError{Offset: next, Reason: "latitude without longitude"}
		}

		dLng, next, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}

		lat += dLat
		lng += dLng
		coords = append(coords, Coordinate{
			Lon: float64(lng) / polylineScale,
			Lat: float64(lat) / polylineScale,
		})
		i = next
	}

	return coords, nil
}

// decodeValue reads one zig-zag encoded signed delta starting at start and
// returns it together with the offset of the following value.
func decodeValue(encoded string, start int) (int64, int, error) {
	var result uint64
	var shift uint

	for i := start; i < len(encoded); i++ {
		c := encoded[i]
		if c < polylineOffset || c > polylineOffset+0x3f {
			return 0, i, &DecodeError{Offset: i, Reason: fmt.Sprintf("invalid character %q", c)}
		}
		if shift > maxChunkShift {
			return 0, i, &DecodeError{Offset: i, Reason: "value overflows 64 bits"}
		}

		chunk := uint64(c - polylineOffset)
		result |= (chunk & chunkMask) << shift
		shift += 5

		if chunk&continuationBit == 0 {
			delta := int64(result >> 1)
			if result&1 != 0 {
				delta = ^delta
			}
			return delta, i + 1, nil
		}
	}

	return 0, len(encoded), &DecodeError{Offset: len(encoded), Reason: "truncated value"}
}

// EncodePolyline encodes coordinates at precision 5. It is the inverse of
// DecodePolyline up to 1e-5 degrees and is used when persisting routes.
func EncodePolyline(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	latLngs := make([][]float64, len(coords))
	for i, c := range coords {
		latLngs[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(latLngs))
}
