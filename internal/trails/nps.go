package trails

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/utils"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

// npsResponse is the subset of the NPS /thingstodo payload the import reads.
type npsResponse struct {
	Data []npsThingToDo `json:"data"`
}

type npsThingToDo struct {
	Title      string     `json:"title"`
	Latitude   looseFloat `json:"latitude"`
	Longitude  looseFloat `json:"longitude"`
	Difficulty string     `json:"difficulty"`
	Images     []npsImage `json:"images"`
}

type npsImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// looseFloat accepts a JSON number, a numeric string, an empty string or
// null. Anything unparsable reads as 0.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// normalizeDifficulty title-cases d and falls back to Moderate for anything
// that is not Easy, Moderate or Hard.
func normalizeDifficulty(d string) string {
	switch t := cases.Title(language.English).String(strings.TrimSpace(d)); t {
	case "Easy", "Moderate", "Hard":
		return t
	default:
		return "Moderate"
	}
}

// parseThingsToDo turns an NPS payload into trails ready to store. Entries
// without a title, or with a zero or out of range coordinate, are skipped.
func parseThingsToDo(payload []byte) (trails []traildb.NewTrail, skipped int, err error) {
	var resp npsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, 0, fmt.Errorf("error parsing NPS payload: %w", err)
	}

	trails = make([]traildb.NewTrail, 0, len(resp.Data))
	for _, item := range resp.Data {
		name := strings.TrimSpace(item.Title)
		lat, lon := float64(item.Latitude), float64(item.Longitude)
		if name == "" || lat == 0 || lon == 0 ||
			utils.ValidateLatitude(lat) != nil || utils.ValidateLongitude(lon) != nil {
			skipped++
			continue
		}

		nt := traildb.NewTrail{
			UpsertTrailParams: traildb.UpsertTrailParams{
				Name:       name,
				Lat:        lat,
				Lon:        lon,
				Difficulty: normalizeDifficulty(item.Difficulty),
			},
		}
		for _, img := range item.Images {
			if img.URL == "" {
				continue
			}
			nt.Images = append(nt.Images, traildb.NewTrailImage{URL: img.URL, Caption: img.Caption})
		}
		trails = append(trails, nt)
	}

	return trails, skipped, nil
}
