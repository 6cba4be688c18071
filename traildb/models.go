package traildb

import (
	"database/sql"
	"time"
)

// Trail is a named trailhead.
type Trail struct {
	ID            int64   // id
	Name          string  // name
	Lat           float64 // lat
	Lon           float64 // lon
	DistanceMiles float64 // distance_miles
	ElevationFeet float64 // elevation_feet
	Difficulty    string  // difficulty (Easy|Moderate|Hard)
	IsDogFriendly bool    // is_dog_friendly
}

// TrailImage is a photo attached to a trail.
type TrailImage struct {
	ID      int64          // id
	TrailID int64          // trail_id
	URL     string         // url
	Caption sql.NullString // caption
}

// RouteResult is a computed route kept so clients can reload it by id.
type RouteResult struct {
	ID                  string    // id
	StartTrail          string    // start_trail
	EndTrail            string    // end_trail
	Polyline            string    // polyline, precision 5
	DistanceMeters      float64   // distance_meters
	ElevationGainMeters float64   // elevation_gain_meters
	SampleCount         int64     // sample_count
	CreatedAt           time.Time // created_at (unix millis)
}
