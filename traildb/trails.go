package traildb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("traildb: not found")

const trailColumns = `id, name, lat, lon, distance_miles, elevation_feet, difficulty, is_dog_friendly`

func scanTrail(row interface{ Scan(...any) error }) (Trail, error) {
	var t Trail
	var dog int64
	err := row.Scan(&t.ID, &t.Name, &t.Lat, &t.Lon, &t.DistanceMiles, &t.ElevationFeet, &t.Difficulty, &dog)
	t.IsDogFriendly = dog != 0
	return t, err
}

const listTrails = `SELECT ` + trailColumns + ` FROM trails ORDER BY name`

func (q *Queries) ListTrails(ctx context.Context) (trails []Trail, err error) {
	rows, err := q.db.QueryContext(ctx, listTrails)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	trails = []Trail{}
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, err
		}
		trails = append(trails, t)
	}
	return trails, rows.Err()
}

const getTrail = `SELECT ` + trailColumns + ` FROM trails WHERE id = ?`

func (q *Queries) GetTrail(ctx context.Context, id int64) (Trail, error) {
	t, err := scanTrail(q.db.QueryRowContext(ctx, getTrail, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Trail{}, ErrNotFound
	}
	return t, err
}

// Exact matches win, then the shortest name containing the query.
const findTrailByName = `SELECT ` + trailColumns + ` FROM trails
WHERE name LIKE '%' || ?1 || '%'
ORDER BY lower(name) = lower(?1) DESC, length(name), name
LIMIT 1`

// FindTrailByName matches name case-insensitively as a substring.
func (q *Queries) FindTrailByName(ctx context.Context, name string) (Trail, error) {
	if name == "" {
		return Trail{}, ErrNotFound
	}
	t, err := scanTrail(q.db.QueryRowContext(ctx, findTrailByName, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Trail{}, ErrNotFound
	}
	return t, err
}

const getTrailByExactName = `SELECT ` + trailColumns + ` FROM trails WHERE name = ?`

const insertTrail = `INSERT INTO trails (
    name, lat, lon, distance_miles, elevation_feet, difficulty, is_dog_friendly
) VALUES (?, ?, ?, ?, ?, ?, ?)`

type UpsertTrailParams struct {
	Name          string
	Lat           float64
	Lon           float64
	DistanceMiles float64
	ElevationFeet float64
	Difficulty    string
	IsDogFriendly bool
}

// UpsertTrail returns the trail with exactly arg.Name, inserting it first if
// it does not exist. An existing row is left untouched. created reports
// whether an insert happened.
func (q *Queries) UpsertTrail(ctx context.Context, arg UpsertTrailParams) (trail Trail, created bool, err error) {
	existing, err := scanTrail(q.db.QueryRowContext(ctx, getTrailByExactName, arg.Name))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Trail{}, false, err
	}

	res, err := q.db.ExecContext(ctx, insertTrail,
		arg.Name, arg.Lat, arg.Lon, arg.DistanceMiles, arg.ElevationFeet, arg.Difficulty, boolToInt(arg.IsDogFriendly))
	if err != nil {
		return Trail{}, false, fmt.Errorf("inserting trail %q: %w", arg.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Trail{}, false, err
	}

	return Trail{
		ID:            id,
		Name:          arg.Name,
		Lat:           arg.Lat,
		Lon:           arg.Lon,
		DistanceMiles: arg.DistanceMiles,
		ElevationFeet: arg.ElevationFeet,
		Difficulty:    arg.Difficulty,
		IsDogFriendly: arg.IsDogFriendly,
	}, true, nil
}

const insertTrailImage = `INSERT OR IGNORE INTO trail_images (trail_id, url, caption) VALUES (?, ?, ?)`

type InsertTrailImageParams struct {
	TrailID int64
	URL     string
	Caption string
}

func (q *Queries) InsertTrailImage(ctx context.Context, arg InsertTrailImageParams) error {
	_, err := q.db.ExecContext(ctx, insertTrailImage, arg.TrailID, arg.URL, toNullString(arg.Caption))
	return err
}

const listTrailImages = `SELECT id, trail_id, url, caption FROM trail_images WHERE trail_id = ? ORDER BY id`

func (q *Queries) ListTrailImages(ctx context.Context, trailID int64) (images []TrailImage, err error) {
	rows, err := q.db.QueryContext(ctx, listTrailImages, trailID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	images = []TrailImage{}
	for rows.Next() {
		var img TrailImage
		if err := rows.Scan(&img.ID, &img.TrailID, &img.URL, &img.Caption); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

const countTrails = `SELECT COUNT(*) FROM trails`

func (q *Queries) CountTrails(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, countTrails).Scan(&n)
	return n, err
}
