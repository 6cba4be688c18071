package traildb

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const saveRouteResult = `INSERT INTO route_results (
    id, start_trail, end_trail, polyline, distance_meters, elevation_gain_meters, sample_count, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) SaveRouteResult(ctx context.Context, r RouteResult) error {
	_, err := q.db.ExecContext(ctx, saveRouteResult,
		r.ID, r.StartTrail, r.EndTrail, r.Polyline,
		r.DistanceMeters, r.ElevationGainMeters, r.SampleCount, r.CreatedAt.UnixMilli())
	return err
}

const getRouteResult = `SELECT
    id, start_trail, end_trail, polyline, distance_meters, elevation_gain_meters, sample_count, created_at
FROM route_results WHERE id = ?`

func (q *Queries) GetRouteResult(ctx context.Context, id string) (RouteResult, error) {
	var r RouteResult
	var createdAt int64
	err := q.db.QueryRowContext(ctx, getRouteResult, id).Scan(
		&r.ID, &r.StartTrail, &r.EndTrail, &r.Polyline,
		&r.DistanceMeters, &r.ElevationGainMeters, &r.SampleCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RouteResult{}, ErrNotFound
	}
	if err != nil {
		return RouteResult{}, err
	}
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	return r, nil
}

const deleteRouteResultsBefore = `DELETE FROM route_results WHERE created_at < ?`

// DeleteRouteResultsBefore prunes cached routes older than cutoff.
func (q *Queries) DeleteRouteResultsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteRouteResultsBefore, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
