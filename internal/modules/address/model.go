// README: Address resolution types (geocoder input, resolved hierarchy, gaps).
package address

import (
	"errors"

	"porter/internal/modules/gazetteer"
	"porter/internal/types"
)

var (
	ErrEmptyQuery   = errors.New("address: empty query")
	ErrInvalidPoint = errors.New("address: invalid coordinates")
)

// ComponentType is the administrative level a geocoder component describes.
type ComponentType string

const (
	TypeRegion       ComponentType = "region"
	TypeProvince     ComponentType = "province"
	TypeLocality     ComponentType = "locality"
	TypeAdminLevel3  ComponentType = "admin_level_3"
	TypeSublocality  ComponentType = "sublocality"
	TypeNeighborhood ComponentType = "neighborhood"
	TypePostalCode   ComponentType = "postal_code"
)

type Component struct {
	LongName  string          `json:"longName"`
	ShortName string          `json:"shortName"`
	Types     []ComponentType `json:"types"`
}

func (c Component) Is(t ComponentType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// GeocodeResult is one geocoder hit, already reduced to the component types
// the matcher understands.
type GeocodeResult struct {
	FormattedAddress string       `json:"formattedAddress"`
	Components       []Component  `json:"components"`
	Location         *types.Point `json:"location,omitempty"`
	PlaceID          string       `json:"placeId,omitempty"`
}

// GeocodeQuery selects a forward lookup by free text or by place id.
type GeocodeQuery struct {
	Address string
	PlaceID string
}

type PostalSource string

const (
	PostalFromGeocoder  PostalSource = "geocoder"
	PostalFromGazetteer PostalSource = "gazetteer"
)

// ResolvedAddress holds the gazetteer entities a geocode result resolved to.
// Nil fields are unresolved and must be entered manually.
type ResolvedAddress struct {
	Region       *gazetteer.Region   `json:"region"`
	Province     *gazetteer.Province `json:"province"`
	City         *gazetteer.City     `json:"city"`
	Barangay     *gazetteer.Barangay `json:"barangay"`
	PostalCode   string              `json:"postalCode"`
	PostalSource PostalSource        `json:"postalSource,omitempty"`
}

// Gap names an address field that could not be resolved.
type Gap string

const (
	GapRegion     Gap = "region"
	GapProvince   Gap = "province"
	GapCity       Gap = "city"
	GapBarangay   Gap = "barangay"
	GapPostalCode Gap = "postal_code"
)

// Gaps lists the unresolved fields in hierarchy order. An empty result means
// the address is complete.
func (a ResolvedAddress) Gaps() []Gap {
	var gaps []Gap
	if a.Region == nil {
		gaps = append(gaps, GapRegion)
	}
	if a.Province == nil {
		gaps = append(gaps, GapProvince)
	}
	if a.City == nil {
		gaps = append(gaps, GapCity)
	}
	if a.Barangay == nil {
		gaps = append(gaps, GapBarangay)
	}
	if a.PostalCode == "" {
		gaps = append(gaps, GapPostalCode)
	}
	return gaps
}

func (a ResolvedAddress) Complete() bool {
	return len(a.Gaps()) == 0
}

// Resolution is what the service hands back to callers: the matched address
// plus the geocoder fields worth keeping for the booking form.
type Resolution struct {
	Address          ResolvedAddress `json:"address"`
	FormattedAddress string          `json:"formattedAddress"`
	Location         *types.Point    `json:"location,omitempty"`
	PlaceID          string          `json:"placeId,omitempty"`
	Gaps             []Gap           `json:"gaps"`
}

func newResolution(g *GeocodeResult, a ResolvedAddress) Resolution {
	r := Resolution{Address: a, Gaps: a.Gaps()}
	if g != nil {
		r.FormattedAddress = g.FormattedAddress
		r.Location = g.Location
		r.PlaceID = g.PlaceID
	}
	return r
}
