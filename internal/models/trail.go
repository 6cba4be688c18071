package models

import "github.com/Happy-Hiker-Co/HappyHiker/traildb"

type TrailImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Trail is the API shape of a stored trail with its photos.
type Trail struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Lat           float64      `json:"lat"`
	Lon           float64      `json:"lon"`
	DistanceMiles float64      `json:"distanceMiles"`
	ElevationFeet float64      `json:"elevationFeet"`
	Difficulty    string       `json:"difficulty"`
	IsDogFriendly bool         `json:"isDogFriendly"`
	Images        []TrailImage `json:"images"`
}

func NewTrail(t traildb.Trail, images []traildb.TrailImage) Trail {
	out := Trail{
		ID:            t.ID,
		Name:          t.Name,
		Lat:           t.Lat,
		Lon:           t.Lon,
		DistanceMiles: t.DistanceMiles,
		ElevationFeet: t.ElevationFeet,
		Difficulty:    t.Difficulty,
		IsDogFriendly: t.IsDogFriendly,
		Images:        make([]TrailImage, 0, len(images)),
	}
	for _, img := range images {
		out.Images = append(out.Images, TrailImage{URL: img.URL, Caption: img.Caption.String})
	}
	return out
}
