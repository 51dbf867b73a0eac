package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"porter/internal/modules/address"
	"porter/internal/types"
)

const (
	regionBias = "ph"
	language   = "en"
)

// componentTypes maps Google address component types onto the levels the
// address matcher understands. Unlisted types are dropped.
var componentTypes = map[string]address.ComponentType{
	"administrative_area_level_1": address.TypeRegion,
	"administrative_area_level_2": address.TypeProvince,
	"locality":                    address.TypeLocality,
	"administrative_area_level_3": address.TypeAdminLevel3,
	"sublocality":                 address.TypeSublocality,
	"sublocality_level_1":         address.TypeSublocality,
	"neighborhood":                address.TypeNeighborhood,
	"postal_code":                 address.TypePostalCode,
}

// Geocoder handles interactions with the Google Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a new Geocoder with the given API Key.
func NewGeocoder(apiKey string) (*Geocoder, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &Geocoder{client: client}, nil
}

// Geocode looks up free text or a place id. ZERO_RESULTS is an empty
// slice, not an error.
func (g *Geocoder) Geocode(ctx context.Context, q address.GeocodeQuery) ([]address.GeocodeResult, error) {
	r := &maps.GeocodingRequest{
		Address:  q.Address,
		PlaceID:  q.PlaceID,
		Region:   regionBias,
		Language: language,
	}
	res, err := g.client.Geocode(ctx, r)
	if err != nil {
		return zeroResults[address.GeocodeResult](err)
	}
	return toGeocodeResults(res), nil
}

func (g *Geocoder) ReverseGeocode(ctx context.Context, p types.Point) ([]address.GeocodeResult, error) {
	r := &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
		Language: language,
	}
	res, err := g.client.ReverseGeocode(ctx, r)
	if err != nil {
		return zeroResults[address.GeocodeResult](err)
	}
	return toGeocodeResults(res), nil
}

func toGeocodeResults(in []maps.GeocodingResult) []address.GeocodeResult {
	out := make([]address.GeocodeResult, 0, len(in))
	for _, r := range in {
		loc := types.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
		g := address.GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			Location:         &loc,
			PlaceID:          r.PlaceID,
		}
		for _, c := range r.AddressComponents {
			var kinds []address.ComponentType
			for _, t := range c.Types {
				if k, ok := componentTypes[t]; ok {
					kinds = append(kinds, k)
				}
			}
			if len(kinds) == 0 {
				continue
			}
			g.Components = append(g.Components, address.Component{
				LongName:  c.LongName,
				ShortName: c.ShortName,
				Types:     kinds,
			})
		}
		out = append(out, g)
	}
	return out
}

func zeroResults[T any](err error) ([]T, error) {
	if strings.Contains(err.Error(), "ZERO_RESULTS") {
		return nil, nil
	}
	return nil, fmt.Errorf("geocoding api error: %w", err)
}

func newClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
