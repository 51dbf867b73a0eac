// README: Deterministic matcher from geocoder components to gazetteer entities.
package address

import (
	"strings"

	"porter/internal/modules/gazetteer"
	"porter/internal/names"
)

var reservedBarangaySuffixes = map[string]bool{
	"district": true,
	"zone":     true,
	"city":     true,
	"region":   true,
}

var metroManila = names.Normalize(names.MetroManila)

type entry[T any] struct {
	v    T
	name string
}

type candidate struct {
	name      string
	exactOnly bool
}

// Matcher resolves geocode results against one gazetteer snapshot. Normalized
// names are computed once at construction; Resolve never mutates anything and
// is safe for concurrent use.
type Matcher struct {
	snap *gazetteer.Snapshot

	regions           []entry[gazetteer.Region]
	provinces         []entry[gazetteer.Province]
	provincesByRegion map[string][]entry[gazetteer.Province]
	cities            []entry[gazetteer.City]
	citiesByProvince  map[string][]entry[gazetteer.City]
	barangaysByCity   map[string][]entry[gazetteer.Barangay]
}

func NewMatcher(snap *gazetteer.Snapshot) *Matcher {
	m := &Matcher{
		snap:              snap,
		provincesByRegion: make(map[string][]entry[gazetteer.Province]),
		citiesByProvince:  make(map[string][]entry[gazetteer.City]),
		barangaysByCity:   make(map[string][]entry[gazetteer.Barangay]),
	}
	for _, r := range snap.Regions() {
		m.regions = append(m.regions, entry[gazetteer.Region]{r, names.Canonical(r.Name)})
	}
	for _, p := range snap.Provinces() {
		e := entry[gazetteer.Province]{p, names.Canonical(p.Name)}
		m.provinces = append(m.provinces, e)
		m.provincesByRegion[p.RegionCode] = append(m.provincesByRegion[p.RegionCode], e)
	}
	for _, c := range snap.Cities() {
		e := entry[gazetteer.City]{c, names.Normalize(c.Name)}
		m.cities = append(m.cities, e)
		m.citiesByProvince[c.ProvinceCode] = append(m.citiesByProvince[c.ProvinceCode], e)
	}
	for _, b := range snap.Barangays() {
		m.barangaysByCity[b.CityCode] = append(m.barangaysByCity[b.CityCode], entry[gazetteer.Barangay]{b, names.Normalize(b.Name)})
	}
	return m
}

func (m *Matcher) Snapshot() *gazetteer.Snapshot { return m.snap }

// Resolve maps one geocode result onto the gazetteer. Partial results are
// normal: unresolved levels stay nil.
func (m *Matcher) Resolve(g GeocodeResult) ResolvedAddress {
	c := extract(g)
	var out ResolvedAddress

	if r, ok := match(c.regions, m.regions); ok {
		out.Region = &r
	}

	var province gazetteer.Province
	var ok bool
	if out.Region != nil {
		province, ok = matchScoped(c.provinces, m.provincesByRegion[out.Region.Code], m.provinces)
	} else {
		province, ok = match(c.provinces, m.provinces)
	}
	if ok {
		out.Province = &province
	}

	var city gazetteer.City
	if out.Province != nil {
		city, ok = matchScoped(c.cities, m.citiesByProvince[out.Province.Code], m.cities)
	} else {
		city, ok = match(c.cities, m.cities)
	}
	if ok {
		out.City = &city
		// A scoped city already agrees with the named levels; one found
		// outside them brings its own chain.
		p, r := m.snap.Chain(city)
		out.Province, out.Region = &p, &r
	} else if out.Province != nil {
		if r, ok := m.snap.Region(out.Province.RegionCode); ok {
			out.Region = &r
		}
	}

	if out.City != nil {
		cityName := names.Normalize(out.City.Name)
		var brgys []candidate
		for _, b := range c.barangays {
			if !names.Matches(b.name, cityName) {
				brgys = append(brgys, b)
			}
		}
		if b, ok := match(brgys, m.barangaysByCity[out.City.Code]); ok {
			out.Barangay = &b
		}
	}

	switch {
	case c.postal != "":
		out.PostalCode, out.PostalSource = c.postal, PostalFromGeocoder
	case out.City != nil && out.City.PostalCode != "":
		out.PostalCode, out.PostalSource = out.City.PostalCode, PostalFromGazetteer
	}
	return out
}

type candidates struct {
	regions   []candidate
	provinces []candidate
	cities    []candidate
	barangays []candidate
	postal    string
}

func extract(g GeocodeResult) candidates {
	var c candidates
	var localities, admin3, sublocalities, neighborhoods []string
	for _, comp := range g.Components {
		name := strings.TrimSpace(comp.LongName)
		if name == "" {
			continue
		}
		switch {
		case comp.Is(TypePostalCode):
			if c.postal == "" {
				c.postal = name
			}
		case comp.Is(TypeRegion):
			c.regions = appendCandidate(c.regions, names.Canonical(name), false)
		case comp.Is(TypeProvince):
			c.provinces = appendCandidate(c.provinces, names.Canonical(name), false)
		case comp.Is(TypeLocality):
			localities = append(localities, name)
		case comp.Is(TypeAdminLevel3):
			admin3 = append(admin3, name)
		case comp.Is(TypeSublocality):
			sublocalities = append(sublocalities, name)
		case comp.Is(TypeNeighborhood):
			neighborhoods = append(neighborhoods, name)
		}
	}

	if len(c.provinces) == 0 {
		for _, r := range c.regions {
			if r.name == metroManila {
				c.provinces = appendCandidate(c.provinces, metroManila, false)
			}
		}
	}

	var cityNames []string
	for _, n := range append(localities, admin3...) {
		norm := names.Normalize(n)
		cityNames = append(cityNames, norm)
		c.cities = appendCandidate(c.cities, norm, false)
	}

	for _, n := range append(sublocalities, neighborhoods...) {
		if hasReservedSuffix(n) {
			continue
		}
		norm := names.Normalize(n)
		if collides(norm, cityNames) {
			continue
		}
		c.barangays = appendCandidate(c.barangays, norm, false)
	}

	// Segments of the formatted address are a last resort and only ever
	// match exactly.
	for _, seg := range strings.Split(g.FormattedAddress, ",") {
		if hasReservedSuffix(seg) {
			c.cities = appendCandidate(c.cities, names.Normalize(seg), true)
			continue
		}
		norm := names.Normalize(seg)
		c.cities = appendCandidate(c.cities, norm, true)
		if !collides(norm, cityNames) {
			c.barangays = appendCandidate(c.barangays, norm, true)
		}
	}
	return c
}

func appendCandidate(list []candidate, name string, exactOnly bool) []candidate {
	if name == "" {
		return list
	}
	for _, c := range list {
		if c.name == name {
			return list
		}
	}
	return append(list, candidate{name: name, exactOnly: exactOnly})
}

// match tries every candidate for an exact name first, then retries the
// loose candidates with containment. Ties go to the earliest pool entry.
func match[T any](cands []candidate, pool []entry[T]) (T, bool) {
	for _, c := range cands {
		for _, e := range pool {
			if e.name == c.name {
				return e.v, true
			}
		}
	}
	for _, c := range cands {
		if c.exactOnly {
			continue
		}
		for _, e := range pool {
			if names.Matches(e.name, c.name) {
				return e.v, true
			}
		}
	}
	var zero T
	return zero, false
}

// matchScoped runs both passes over the entries under the resolved parent
// before looking anywhere else. Outside that scope only real components are
// tried, never formatted-address segments.
func matchScoped[T any](cands []candidate, scoped, global []entry[T]) (T, bool) {
	if v, ok := match(cands, scoped); ok {
		return v, true
	}
	var loose []candidate
	for _, c := range cands {
		if !c.exactOnly {
			loose = append(loose, c)
		}
	}
	return match(loose, global)
}

func hasReservedSuffix(raw string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return false
	}
	last := strings.Trim(fields[len(fields)-1], ".")
	return reservedBarangaySuffixes[last]
}

func collides(name string, cities []string) bool {
	for _, c := range cities {
		if names.Matches(name, c) {
			return true
		}
	}
	return false
}
