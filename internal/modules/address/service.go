// README: Address service: geocoder lookups resolved against the gazetteer.
package address

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"porter/internal/types"
)

// Geocoder is the external lookup the service depends on. Implementations
// return an empty slice, not an error, for a lookup with no hits.
type Geocoder interface {
	Geocode(ctx context.Context, q GeocodeQuery) ([]GeocodeResult, error)
	ReverseGeocode(ctx context.Context, p types.Point) ([]GeocodeResult, error)
}

type Service struct {
	geocoder Geocoder
	matcher  *Matcher
	log      *zap.Logger
}

func NewService(geocoder Geocoder, matcher *Matcher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{geocoder: geocoder, matcher: matcher, log: log}
}

func (s *Service) Matcher() *Matcher { return s.matcher }

// ResolveAddress geocodes free text. Geocoder failures come back as an empty
// resolution with every gap set; only invalid input is an error.
func (s *Service) ResolveAddress(ctx context.Context, text string) (Resolution, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Resolution{}, ErrEmptyQuery
	}
	results, err := s.geocoder.Geocode(ctx, GeocodeQuery{Address: text})
	return s.resolve(results, err, zap.String("address", text)), nil
}

func (s *Service) ResolvePlace(ctx context.Context, placeID string) (Resolution, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return Resolution{}, ErrEmptyQuery
	}
	results, err := s.geocoder.Geocode(ctx, GeocodeQuery{PlaceID: placeID})
	return s.resolve(results, err, zap.String("place_id", placeID)), nil
}

func (s *Service) ResolvePoint(ctx context.Context, p types.Point) (Resolution, error) {
	if !p.Valid() {
		return Resolution{}, ErrInvalidPoint
	}
	results, err := s.geocoder.ReverseGeocode(ctx, p)
	res := s.resolve(results, err, zap.Stringer("point", p))
	// The pin stays where the user put it, not on the snapped result.
	res.Location = &p
	return res, nil
}

func (s *Service) resolve(results []GeocodeResult, err error, field zap.Field) Resolution {
	if err != nil {
		s.log.Warn("geocoder lookup failed", field, zap.Error(err))
		return newResolution(nil, ResolvedAddress{})
	}
	if len(results) == 0 {
		s.log.Info("geocoder returned no results", field)
		return newResolution(nil, ResolvedAddress{})
	}
	g := results[0]
	addr := s.matcher.Resolve(g)
	if gaps := addr.Gaps(); len(gaps) > 0 {
		s.log.Debug("address partially resolved", field, zap.Any("gaps", gaps))
	}
	return newResolution(&g, addr)
}
