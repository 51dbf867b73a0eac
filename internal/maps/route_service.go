package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"porter/internal/modules/tracking"
	"porter/internal/types"
)

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

// Route returns the driving route from origin to dest. Traffic-aware
// requests depart "now" so the API fills in DurationInTraffic.
func (s *RouteService) Route(ctx context.Context, origin, dest types.Point, opts tracking.RouteOptions) (tracking.RouteResult, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: dest.String(),
		Mode:        maps.TravelModeDriving,
		Region:      regionBias,
		Language:    language,
	}
	if opts.TrafficAware {
		r.DepartureTime = "now"
		r.TrafficModel = maps.TrafficModelBestGuess
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return tracking.RouteResult{}, fmt.Errorf("maps api error: %w", err)
	}
	return toRouteResult(routes)
}

func toRouteResult(routes []maps.Route) (tracking.RouteResult, error) {
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return tracking.RouteResult{}, fmt.Errorf("no route found")
	}
	leg := routes[0].Legs[0]
	out := tracking.RouteResult{
		DistanceMeters:    leg.Distance.Meters,
		Duration:          leg.Duration,
		DurationInTraffic: leg.DurationInTraffic,
	}

	path, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return out, nil
	}
	out.Path = make([]types.Point, len(path))
	for i, p := range path {
		out.Path[i] = types.Point{Lat: p.Lat, Lng: p.Lng}
	}
	return out, nil
}
