// Package routing plans a walking route between two named trails and keeps the
// result so it can be fetched again by id.
package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/mapping"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/metrics"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routemetrics"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

var (
	ErrTrailNotFound = errors.New("trail not found")
	// ErrRouteNotFound covers both a missing saved route and a route whose
	// geometry could not be decoded.
	ErrRouteNotFound = errors.New("route not found")
	ErrElevation     = errors.New("elevation lookup failed")
)

const (
	SourceTrail    = "trail"
	SourceGeocoder = "geocoder"
)

// Store is the persistence the planner needs. *traildb.Queries satisfies it.
type Store interface {
	FindTrailByName(ctx context.Context, name string) (traildb.Trail, error)
	SaveRouteResult(ctx context.Context, r traildb.RouteResult) error
	GetRouteResult(ctx context.Context, id string) (traildb.RouteResult, error)
}

type Directions interface {
	Route(ctx context.Context, from, to routemetrics.Coordinate) (mapping.Route, error)
}

type Elevations interface {
	Elevations(ctx context.Context, points []routemetrics.Coordinate) ([]float64, error)
}

// Endpoint is a resolved start or end of a route.
type Endpoint struct {
	Name       string                  `json:"name"`
	TrailID    int64                   `json:"trailId,omitempty"`
	Source     string                  `json:"source,omitempty"`
	Coordinate routemetrics.Coordinate `json:"coordinate"`
}

// Plan is a computed route with its display metrics.
type Plan struct {
	ID              string                    `json:"id"`
	Start           Endpoint                  `json:"start"`
	End             Endpoint                  `json:"end"`
	Polyline        string                    `json:"polyline"`
	Coordinates     []routemetrics.Coordinate `json:"coordinates"`
	DurationSeconds float64                   `json:"durationSeconds,omitempty"`
	SampleCount     int                       `json:"sampleCount"`
	CreatedAt       time.Time                 `json:"createdAt"`
	routemetrics.Metrics
}

type Config struct {
	Store      Store
	Geocoder   mapping.Geocoder
	Directions Directions
	Elevations Elevations
	Metrics    *metrics.Collector
	Logger     *slog.Logger
}

type Service struct {
	store      Store
	geocoder   mapping.Geocoder
	directions Directions
	elevations Elevations
	metrics    *metrics.Collector
	logger     *slog.Logger
	now        func() time.Time
	newID      func() uuid.UUID
}

func NewService(cfg Config) *Service {
	return &Service{
		store:      cfg.Store,
		geocoder:   cfg.Geocoder,
		directions: cfg.Directions,
		elevations: cfg.Elevations,
		metrics:    cfg.Metrics,
		logger:     logging.Component(cfg.Logger, "routing"),
		now:        time.Now,
		newID:      uuid.New,
	}
}

// resolve looks the name up in the trail store first and falls back to the
// geocoder when the store has no match.
func (s *Service) resolve(ctx context.Context, name string) (Endpoint, error) {
	if name == "" {
		return Endpoint{}, fmt.Errorf("%w: empty name", ErrTrailNotFound)
	}

	trail, err := s.store.FindTrailByName(ctx, name)
	if err == nil {
		return Endpoint{
			Name:       trail.Name,
			TrailID:    trail.ID,
			Source:     SourceTrail,
			Coordinate: routemetrics.Coordinate{Lon: trail.Lon, Lat: trail.Lat},
		}, nil
	}
	if !errors.Is(err, traildb.ErrNotFound) {
		return Endpoint{}, fmt.Errorf("trail lookup %q: %w", name, err)
	}

	if s.geocoder == nil {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrTrailNotFound, name)
	}

	c, err := s.geocoder.Locate(ctx, name)
	if err != nil {
		if ctx.Err() != nil {
			return Endpoint{}, ctx.Err()
		}
		s.logger.Debug("geocoder miss", slog.String("name", name), slog.String("error", err.Error()))
		return Endpoint{}, fmt.Errorf("%w: %q", ErrTrailNotFound, name)
	}
	return Endpoint{Name: name, Source: SourceGeocoder, Coordinate: c}, nil
}

// Plan computes and stores a walking route between two trail names.
func (s *Service) Plan(ctx context.Context, startName, endName string) (plan Plan, err error) {
	startTime := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		if err == nil {
			outcome = metrics.OutcomeOK
		}
		s.metrics.ObserveRoute(outcome)
		logging.LogOperation(s.logger, "route_planned",
			slog.String("start", startName),
			slog.String("end", endName),
			slog.String("outcome", outcome),
			slog.Duration("duration", time.Since(startTime)))
	}()

	startName, endName = strings.TrimSpace(startName), strings.TrimSpace(endName)

	start, err := s.resolve(ctx, startName)
	if err != nil {
		if errors.Is(err, ErrTrailNotFound) {
			outcome = metrics.OutcomeTrailNotFound
		}
		return Plan{}, err
	}
	end, err := s.resolve(ctx, endName)
	if err != nil {
		if errors.Is(err, ErrTrailNotFound) {
			outcome = metrics.OutcomeTrailNotFound
		}
		return Plan{}, err
	}

	route, err := s.directions.Route(ctx, start.Coordinate, end.Coordinate)
	if err != nil {
		if errors.Is(err, mapping.ErrNoRoute) {
			outcome = metrics.OutcomeNoRoute
			return Plan{}, fmt.Errorf("%w: %w", ErrRouteNotFound, err)
		}
		return Plan{}, fmt.Errorf("directions: %w", err)
	}

	coords, err := routemetrics.DecodePolyline(route.Polyline)
	if err != nil {
		outcome = metrics.OutcomeBadGeometry
		s.metrics.ObserveDecodeFailure()
		logging.LogError(s.logger, "route geometry rejected", err)
		return Plan{}, fmt.Errorf("%w: %w", ErrRouteNotFound, err)
	}
	if len(coords) == 0 {
		outcome = metrics.OutcomeNoRoute
		return Plan{}, fmt.Errorf("%w: empty geometry", ErrRouteNotFound)
	}

	samples := routemetrics.SampleForElevation(coords)
	lookupStart := time.Now()
	elevations, err := s.elevations.Elevations(ctx, samples)
	s.metrics.ObserveElevationLookup(time.Since(lookupStart), len(samples))
	if err != nil {
		outcome = metrics.OutcomeElevationFailed
		return Plan{}, fmt.Errorf("%w: %w", ErrElevation, err)
	}

	summary, err := routemetrics.Summarize(route.DistanceMeters, elevations)
	if err != nil {
		outcome = metrics.OutcomeElevationFailed
		return Plan{}, err
	}

	plan = Plan{
		ID:              s.newID().String(),
		Start:           start,
		End:             end,
		Polyline:        routemetrics.EncodePolyline(coords),
		Coordinates:     coords,
		DurationSeconds: route.DurationSeconds,
		SampleCount:     len(samples),
		CreatedAt:       s.now().UTC().Truncate(time.Millisecond),
		Metrics:         summary,
	}

	if err := s.store.SaveRouteResult(ctx, traildb.RouteResult{
		ID:                  plan.ID,
		StartTrail:          start.Name,
		EndTrail:            end.Name,
		Polyline:            plan.Polyline,
		DistanceMeters:      summary.DistanceMeters,
		ElevationGainMeters: summary.ElevationGainMeters,
		SampleCount:         int64(plan.SampleCount),
		CreatedAt:           plan.CreatedAt,
	}); err != nil {
		return Plan{}, fmt.Errorf("save route result: %w", err)
	}

	return plan, nil
}

// Lookup returns a saved route, decoding its stored geometry again.
func (s *Service) Lookup(ctx context.Context, id string) (Plan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Plan{}, fmt.Errorf("%w: %q", ErrRouteNotFound, id)
	}

	r, err := s.store.GetRouteResult(ctx, id)
	if errors.Is(err, traildb.ErrNotFound) {
		return Plan{}, fmt.Errorf("%w: %q", ErrRouteNotFound, id)
	}
	if err != nil {
		return Plan{}, err
	}

	coords, err := routemetrics.DecodePolyline(r.Polyline)
	if err != nil {
		s.metrics.ObserveDecodeFailure()
		return Plan{}, fmt.Errorf("%w: %w", ErrRouteNotFound, err)
	}

	plan := Plan{
		ID:          r.ID,
		Start:       Endpoint{Name: r.StartTrail},
		End:         Endpoint{Name: r.EndTrail},
		Polyline:    r.Polyline,
		Coordinates: coords,
		SampleCount: int(r.SampleCount),
		CreatedAt:   r.CreatedAt,
		Metrics:     routemetrics.NewMetrics(r.DistanceMeters, r.ElevationGainMeters),
	}
	if len(coords) > 0 {
		plan.Start.Coordinate = coords[0]
		plan.End.Coordinate = coords[len(coords)-1]
	}
	return plan, nil
}
